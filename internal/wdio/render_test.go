package wdio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := Record{
		"runner":       "local",
		"maxInstances": 1,
		"bail":         0,
		"capabilities": []Capability{{"platformName": "iOS", "appium:noReset": false}},
		"exclude":      []any{},
		"mochaOpts":    map[string]any{"ui": "bdd"},
		"specs":        []any{Expr("path.join(__dirname, 'a.test.ts')")},
		"onPrepare":    Hook([]string{"config", "capabilities"}, "Starting test execution..."),
		"missing":      nil,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r))

	want := `// Code generated by wdiorun. DO NOT EDIT.
const path = require('path');

exports.config = {
  bail: 0,
  capabilities: [
    {
      "appium:noReset": false,
      platformName: "iOS",
    },
  ],
  exclude: [],
  maxInstances: 1,
  missing: null,
  mochaOpts: {
    ui: "bdd",
  },
  onPrepare: function (config, capabilities) {
    console.log(` + "`Starting test execution...`" + `);
  },
  runner: "local",
  specs: [
    path.join(__dirname, 'a.test.ts'),
  ],
};
`
	assert.Equal(t, want, buf.String())
}

func TestRender_AsyncHook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, IOS()))

	out := buf.String()
	assert.Contains(t, out, "beforeSession: async function (config, capabilities, specs) {\n")
	assert.Contains(t, out, "    "+Sleep(5000)+"\n")
	assert.Contains(t, out, `"appium:deviceName": "iPhone 16 Pro",`)
	assert.Contains(t, out, `"appium:app": process.env.IOS_APP_PATH || './apps/MyTestApp.app',`)
}

func TestRender_Base(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Base()))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "};\n"))
	assert.Contains(t, out, "return `junit-${options.cid}.xml`;")
	assert.Contains(t, out, "afterTest: function (test, context, { error, result, duration, passed, retries }) {")
}

func TestRender_Unsupported(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Record{"ch": make(chan int)})
	assert.Error(t, err)
}
