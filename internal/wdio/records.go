package wdio

import (
	"fmt"
	"sort"

	"github.com/saucelabs/wdiorun/internal/msg"
)

// Hook parameter lists as passed by the WebdriverIO launcher.
var (
	launcherParams = []string{"config", "capabilities"}
	completeParams = []string{"exitCode", "config", "capabilities", "results"}
	sessionParams  = []string{"config", "capabilities", "specs"}
	beforeParams   = []string{"capabilities", "specs"}
	testParams     = []string{"test", "context"}
	afterTestArgs  = []string{"test", "context", "{ error, result, duration, passed, retries }"}
)

// Base returns the record every target builds upon.
func Base() Record {
	return Record{
		"runner": "local",
		"specs": []any{
			Expr("path.join(__dirname, '../../src/tests/**/*.test.ts')"),
			Expr("path.join(__dirname, '../../src/tests/**/*.spec.ts')"),
		},
		"exclude":      []any{},
		"maxInstances": 1,
		"capabilities": []Capability{},

		"logLevel":               "info",
		"bail":                   0,
		"waitforTimeout":         15000,
		"connectionRetryTimeout": 180000,
		"connectionRetryCount":   5,

		"framework": "mocha",
		"mochaOpts": map[string]any{
			"ui":      "bdd",
			"timeout": 60000,
		},

		"reporters": []any{
			"spec",
			[]any{"junit", reportOptions("junit-${options.cid}.xml")},
			[]any{"mochawesome", reportOptions("mochawesome-${options.cid}.json")},
		},

		"onPrepare":     Hook(launcherParams, "Starting test execution..."),
		"onComplete":    Hook(completeParams, "Test execution completed"),
		"beforeSession": Hook(sessionParams, "Starting new session..."),
		"afterSession":  Hook(sessionParams, "Session ended"),
		"beforeTest":    Hook(testParams, "Starting test: ${test.title}"),
		"afterTest":     Hook(afterTestArgs, "Test ${test.title} ${passed ? 'PASSED' : 'FAILED'}"),
	}
}

func reportOptions(fileFormat string) map[string]any {
	return map[string]any{
		"outputDir": "./test-results",
		"outputFileFormat": Func{
			Params: []string{"options"},
			Body:   []string{fmt.Sprintf("return `%s`;", fileFormat)},
		},
	}
}

// IOS returns the overrides for running against a local iOS simulator through a manually started Appium server.
func IOS() Record {
	beforeSession := Hook(sessionParams,
		"Starting iOS simulator session...",
		"Device: ${capabilities['appium:deviceName']}",
		"Platform Version: ${capabilities['appium:platformVersion']}",
		"Waiting for Appium to be ready...",
	)
	beforeSession.Async = true
	beforeSession.Body = append(beforeSession.Body, Sleep(5000))
	beforeSession.Body = append(beforeSession.Body, logLines("Proceeding with test execution...")...)

	return Record{
		"port": 4723,
		"capabilities": []Capability{
			{
				"platformName":          "iOS",
				"appium:deviceName":     "iPhone 16 Pro",
				"appium:app":            Expr("process.env.IOS_APP_PATH || './apps/MyTestApp.app'"),
				"appium:locale":         "en_US",
				"appium:showXcodeLog":   false,
				"appium:automationName": "xcuitest",
			},
		},
		"services": []any{},

		"beforeSession": beforeSession,

		"waitforTimeout":         15000,
		"connectionRetryTimeout": 90000,

		"before":       Hook(beforeParams, "Setting up iOS test environment..."),
		"afterSession": Hook(sessionParams, "iOS simulator session ended"),
	}
}

// DeviceFarmIOS returns the overrides for running on a real iOS device in AWS Device Farm. Device Farm starts
// Appium on the host and runs one test at a time per device.
func DeviceFarmIOS() Record {
	return Record{
		"specs":    []any{Expr("path.resolve(__dirname, '../../src/tests/**/*.js')")},
		"hostname": "127.0.0.1",
		"port":     4723,
		"path":     "/wd/hub",
		"services": []any{},

		"capabilities": []Capability{
			{
				"platformName":                "iOS",
				"appium:automationName":       "XCUITest",
				"appium:locale":               "en_US",
				"appium:language":             "en",
				"appium:newCommandTimeout":    240,
				"appium:shouldTerminateApp":   true,
				"appium:noReset":              false,
				"appium:fullReset":            false,
				"appium:wdaLaunchTimeout":     60000,
				"appium:wdaConnectionTimeout": 60000,
			},
		},

		"waitforTimeout":         30000,
		"connectionRetryTimeout": 180000,
		"connectionRetryCount":   3,

		"maxInstances": 1,
		"logLevel":     "info",

		"beforeSession": Hook(sessionParams,
			"Starting AWS Device Farm session...",
			"Platform: ${capabilities.platformName}",
			"Automation: ${capabilities['appium:automationName']}",
			"Language: ${capabilities['appium:language']}",
		),
		"before": Hook(beforeParams,
			"Setting up Device Farm test environment...",
			"Running ${specs.length} test file(s)",
		),
		"afterSession": Hook(sessionParams, "AWS Device Farm session completed"),
		"onComplete": Hook(completeParams,
			"Device Farm test execution summary:",
			"Exit code: ${exitCode}",
			"All Device Farm tests completed",
		),
	}
}

// BaseName is the name under which the base record can be looked up.
const BaseName = "base"

var registry = map[string]func() Record{
	"ios":    IOS,
	"df.ios": DeviceFarmIOS,
}

// Names returns the sorted names of all targets with a built-in record.
func Names() []string {
	var names []string
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the target specific record of name, without the base record applied.
func Lookup(name string) (Record, error) {
	if name == BaseName {
		return Base(), nil
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf(msg.UnknownRecord, name)
	}
	return fn(), nil
}

// Effective returns the record of name merged over the base record.
func Effective(name string) (Record, error) {
	r, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if name == BaseName {
		return r, nil
	}
	return Merge(Base(), r), nil
}
