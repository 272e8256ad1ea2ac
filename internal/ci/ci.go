package ci

import "os"

// Provider represents a CI Provider.
type Provider struct {
	// Name of the Provider.
	Name string

	// The environment variable by which the Provider is detected.
	Envar string
}

var (
	// AWS represents https://aws.amazon.com/codebuild/
	AWS = Provider{Name: "AWS CodeBuild", Envar: "CODEBUILD_INITIATOR"}
	// DeviceFarm represents the host of an AWS Device Farm test run.
	DeviceFarm = Provider{Name: "AWS Device Farm", Envar: "DEVICEFARM_DEVICE_POOL_ARN"}
	// Azure represents https://azure.microsoft.com/en-us/services/devops/
	Azure = Provider{Name: "Azure DevOps", Envar: "Agent_BuildDirectory"}
	// Bitbucket represents https://bitbucket.org/product/features/pipelines
	Bitbucket = Provider{Name: "Bitbucket", Envar: "BITBUCKET_BUILD_NUMBER"}
	// Buildkite represents https://buildkite.com/
	Buildkite = Provider{Name: "Buildkite", Envar: "BUILDKITE"}
	// Circle represents https://circleci.com/
	Circle = Provider{Name: "CircleCI", Envar: "CIRCLECI"}
	// GitHub represents https://github.com/
	GitHub = Provider{Name: "GitHub", Envar: "GITHUB_RUN_ID"}
	// GitLab represents https://about.gitlab.com/
	GitLab = Provider{Name: "GitLab", Envar: "CI_PIPELINE_ID"}
	// Jenkins represents https://www.jenkins.io/
	Jenkins = Provider{Name: "Jenkins", Envar: "BUILD_NUMBER"}
	// Travis represents https://www.travis-ci.com/
	Travis = Provider{Name: "Travis CI", Envar: "TRAVIS_BUILD_ID"}

	// None represents a non-CI environment.
	None = Provider{}
)

// Providers contains a list of all supported providers, in order of detection.
var Providers = []Provider{
	DeviceFarm,
	AWS,
	Azure,
	Bitbucket,
	Buildkite,
	Circle,
	GitHub,
	GitLab,
	Jenkins,
	Travis,
}

// GetProvider returns a CI Provider if this code is executed in a known CI environment.
// Returns None if it's not a CI environment or if the CI Provider could not be detected.
func GetProvider() Provider {
	for _, p := range Providers {
		if v, ok := os.LookupEnv(p.Envar); ok && v != "" {
			return p
		}
	}

	return None
}

// IsAvailable detects whether this code is executed inside a CI environment.
func IsAvailable() bool {
	// Most CI providers have this.
	if os.Getenv("CI") != "" {
		return true
	}

	return GetProvider() != None
}
