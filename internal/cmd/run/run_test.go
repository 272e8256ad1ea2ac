package run

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"

	"github.com/saucelabs/wdiorun/internal/launcher"
	"github.com/saucelabs/wdiorun/internal/msg"
	"github.com/saucelabs/wdiorun/internal/settings"
	"github.com/saucelabs/wdiorun/internal/target"
)

type fakeLauncher struct {
	calls      int
	configPath string
	args       []string
	code       int
	err        error
}

func (f *fakeLauncher) Run(_ context.Context, configPath string, args []string) (int, error) {
	f.calls++
	f.configPath = configPath
	f.args = args
	return f.code, f.err
}

func newWorkDir(t *testing.T) *fs.Dir {
	return fs.NewDir(t, "suite",
		fs.WithFile("tsconfig.json", "{}"),
		fs.WithDir("wdio",
			fs.WithDir("configs",
				fs.WithFile("base.config.ts", ""),
				fs.WithFile("ios.config.ts", ""),
				fs.WithFile("df.ios.config.js", ""),
			),
		),
	)
}

func newRunner(dir *fs.Dir, tgt string, l *fakeLauncher) *Runner {
	return &Runner{
		Settings: settings.Settings{
			Target:    tgt,
			ConfigDir: dir.Join("wdio", "configs"),
			Mode:      "auto",
		},
		WorkDir:  dir.Path(),
		Launcher: l,
	}
}

func TestRunner_Run(t *testing.T) {
	dir := newWorkDir(t)
	defer dir.Remove()

	tests := []struct {
		name     string
		target   string
		pool     string
		code     int
		wantPath string
		wantCode int
	}{
		{
			name:     "local target from source",
			target:   "ios",
			wantPath: dir.Join("wdio", "configs", "ios.config.ts"),
		},
		{
			name:     "device farm target",
			target:   "df.ios",
			wantPath: dir.Join("wdio", "configs", "df.ios.config.js"),
		},
		{
			name:     "launcher exit code is relayed",
			target:   "df.ios",
			pool:     "arn:aws:devicefarm:us-west-2::devicepool:1",
			code:     3,
			wantPath: dir.Join("wdio", "configs", "df.ios.config.js"),
			wantCode: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &fakeLauncher{code: tt.code}
			r := newRunner(dir, tt.target, l)
			r.Settings.DevicePoolARN = tt.pool

			code, err := r.Run(context.Background(), []string{"--spec", "a.test.ts"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, 1, l.calls)
			assert.Equal(t, tt.wantPath, l.configPath)
			assert.Equal(t, []string{"--spec", "a.test.ts"}, l.args)
		})
	}
}

func TestRunner_Run_MissingTarget(t *testing.T) {
	color.NoColor = true
	dir := newWorkDir(t)
	defer dir.Remove()

	var out bytes.Buffer
	l := &fakeLauncher{}
	r := newRunner(dir, "", l)
	r.Stdout = &out
	code, err := r.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, 0, l.calls)
	assert.Contains(t, out.String(), "TARGET=ios ")
	assert.Contains(t, out.String(), "TARGET=df.ios ")
}

func TestRunner_Run_UnknownTarget(t *testing.T) {
	color.NoColor = true
	dir := newWorkDir(t)
	defer dir.Remove()

	var out bytes.Buffer
	l := &fakeLauncher{}
	r := newRunner(dir, "doesnotexist", l)
	r.Stdout = &out
	code, err := r.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, 0, l.calls)

	list := out.String()[strings.Index(out.String(), "Available configurations:"):]
	for _, name := range []string{"base", "df.ios", "ios"} {
		assert.Contains(t, list, "TARGET="+name+"\n")
	}
	assert.NotContains(t, list, ".config.")
}

func TestRunner_Run_UnreadableConfigDir(t *testing.T) {
	color.NoColor = true
	dir := newWorkDir(t)
	defer dir.Remove()

	var out bytes.Buffer
	l := &fakeLauncher{}
	r := newRunner(dir, "ios", l)
	r.Settings.ConfigDir = dir.Join("missing")
	r.Stdout = &out
	code, err := r.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, 0, l.calls)
	assert.Contains(t, out.String(), msg.NoConfigsFound)
}

func TestRunner_launcher(t *testing.T) {
	r := &Runner{
		Settings: settings.Settings{Launcher: []string{"npx", "wdio", "run"}},
		WorkDir:  ".",
	}

	d, ok := r.launcher(target.New("df.ios", "")).(launcher.Delayed)
	require.True(t, ok)
	e, ok := d.Launcher.(*launcher.Exec)
	require.True(t, ok)

	assert.Contains(t, e.Env, "TARGET=df.ios")
	require.Len(t, e.Env, 2)
	assert.True(t, strings.HasPrefix(e.Env[1], "WDIO_RUN_ID="))
}

func TestRunner_Run_InvalidMode(t *testing.T) {
	dir := newWorkDir(t)
	defer dir.Remove()

	l := &fakeLauncher{}
	r := newRunner(dir, "ios", l)
	r.Settings.Mode = "bundled"

	code, err := r.Run(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, 0, l.calls)
}

func TestRunner_Run_LauncherError(t *testing.T) {
	dir := newWorkDir(t)
	defer dir.Remove()

	l := &fakeLauncher{code: 0, err: errors.New("boom")}
	code, err := newRunner(dir, "ios", l).Run(context.Background(), nil)

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, code)
}

func TestRunner_Run_WaitsForAppium(t *testing.T) {
	dir := newWorkDir(t)
	defer dir.Remove()

	var polled atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polled.Store(true)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":{"ready":true}}`))
	}))
	defer ts.Close()

	l := &fakeLauncher{}
	r := newRunner(dir, "ios", l)
	r.Settings.Appium = settings.Appium{StatusURL: ts.URL + "/status", Timeout: 5 * time.Second}

	code, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.True(t, polled.Load())
	assert.Equal(t, 1, l.calls)
}

func TestRunner_Run_AppiumNotReady(t *testing.T) {
	dir := newWorkDir(t)
	defer dir.Remove()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	l := &fakeLauncher{}
	r := newRunner(dir, "ios", l)
	r.Settings.Appium = settings.Appium{StatusURL: ts.URL, Timeout: 50 * time.Millisecond}

	code, err := r.Run(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Equal(t, 0, l.calls)
}

func TestRunner_Run_DeviceFarmSkipsAppium(t *testing.T) {
	dir := newWorkDir(t)
	defer dir.Remove()

	l := &fakeLauncher{}
	r := newRunner(dir, "df.ios", l)
	r.Settings.Appium = settings.Appium{StatusURL: "http://127.0.0.1:1/status", Timeout: time.Millisecond}

	code, err := r.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, 1, l.calls)
}
