package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"

	"github.com/saucelabs/wdiorun/internal/ci"
	"github.com/saucelabs/wdiorun/internal/fpath"
	"github.com/saucelabs/wdiorun/internal/node"
	"github.com/saucelabs/wdiorun/internal/resolver"
)

// WdioPackage is the npm package that provides the launcher.
const WdioPackage = "@wdio/cli"

// WdioConstraint is the range of supported launcher versions.
var WdioConstraint = mustConstraint(">= 8.0.0")

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}

// Check is a single environment check. Result describes the outcome in a few words.
type Check struct {
	Name string
	Run  func() (result string, err error)
	// Optional checks are reported but do not fail the verification.
	Optional bool
}

// Verify runs all checks, prints their outcome to w and returns an error if any required check failed.
func Verify(w io.Writer, checks []Check) error {
	var failed []string
	for _, c := range checks {
		result, err := c.Run()
		switch {
		case err == nil:
			fmt.Fprintf(w, "    %s %s: %s\n", color.GreenString("[✔]"), c.Name, result)
		case c.Optional:
			fmt.Fprintf(w, "    %s %s: %s\n", color.YellowString("[!]"), c.Name, err)
		default:
			fmt.Fprintf(w, "    %s %s: %s\n", color.RedString("[✖]"), c.Name, err)
			failed = append(failed, c.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed checks: %s", strings.Join(failed, ", "))
	}
	return nil
}

// Checks returns the checks for a test suite in workDir with its configs in configDir.
func Checks(workDir, configDir, target string) []Check {
	return []Check{
		{Name: "Working directory", Run: func() (string, error) { return filepath.Abs(workDir) }},
		{Name: "CI", Run: VerifyCI, Optional: true},
		{Name: "TARGET", Run: func() (string, error) { return VerifyTarget(target) }, Optional: true},
		{Name: "node", Run: func() (string, error) { return exec.LookPath("node") }},
		{Name: "npx", Run: func() (string, error) { return exec.LookPath("npx") }},
		{Name: "Configurations", Run: func() (string, error) { return VerifyConfigDir(configDir) }},
		{Name: WdioPackage, Run: func() (string, error) { return VerifyWdio(workDir) }},
	}
}

// VerifyCI reports the CI provider the checks run on.
func VerifyCI() (string, error) {
	if !ci.IsAvailable() {
		return "", errors.New("not running in CI")
	}
	if p := ci.GetProvider(); p != ci.None {
		return p.Name, nil
	}
	return "unknown provider", nil
}

// VerifyTarget verifies that a target is selected.
func VerifyTarget(target string) (string, error) {
	if target == "" {
		return "", errors.New("not set")
	}
	return target, nil
}

// VerifyConfigDir verifies that configDir holds at least one target configuration.
func VerifyConfigDir(configDir string) (string, error) {
	files, err := fpath.FindFiles(configDir, resolver.CandidatePattern)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s does not exist", configDir)
		}
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no configurations found in %s", configDir)
	}

	return fmt.Sprintf("%d found in %s", len(files), configDir), nil
}

// VerifyWdio verifies that the test suite in workDir depends on the launcher and has a supported version of it
// installed.
func VerifyWdio(workDir string) (string, error) {
	p, err := node.PackageFromFile(filepath.Join(workDir, "package.json"))
	if err != nil {
		return "", fmt.Errorf("error reading package.json: %w", err)
	}

	declared, ok := p.DependencyVersion(WdioPackage)
	if !ok {
		return "", fmt.Errorf("%s is not a dependency", WdioPackage)
	}

	installed, err := node.InstalledPackage(workDir, WdioPackage)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s %s is not installed, run 'npm install'", WdioPackage, declared)
		}
		return "", fmt.Errorf("error reading installed %s: %w", WdioPackage, err)
	}

	v, err := semver.NewVersion(installed.Version)
	if err != nil {
		return "", fmt.Errorf("unable to parse installed version (%s): %w", installed.Version, err)
	}
	if !WdioConstraint.Check(v) {
		return "", fmt.Errorf("version %s is not supported, %s is required", v, WdioConstraint)
	}

	return fmt.Sprintf("%s (declared %s)", v, declared), nil
}
