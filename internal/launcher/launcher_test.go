package launcher

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExec_Run(t *testing.T) {
	tests := []struct {
		name     string
		command  []string
		args     []string
		wantCode int
		wantOut  string
		wantErr  bool
	}{
		{
			name:     "passes config path and args",
			command:  []string{"sh", "-c", `echo "$@"`, "sh"},
			args:     []string{"--spec", "login.test.ts"},
			wantCode: 0,
			wantOut:  "wdio/configs/ios.config.ts --spec login.test.ts\n",
		},
		{
			name:     "relays exit code",
			command:  []string{"sh", "-c", "exit 3", "sh"},
			wantCode: 3,
		},
		{
			name:     "command not found",
			command:  []string{"wdiorun-launcher-that-does-not-exist"},
			wantCode: 1,
			wantErr:  true,
		},
		{
			name:     "empty command",
			command:  nil,
			wantCode: 1,
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			e := NewExec(tt.command)
			e.Stdin = nil
			e.Stdout = &out
			e.Stderr = &out

			code, err := e.Run(context.Background(), "wdio/configs/ios.config.ts", tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCode, code)
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, out.String())
			}
		})
	}
}

func TestExec_Run_Env(t *testing.T) {
	var out bytes.Buffer
	e := NewExec([]string{"sh", "-c", `echo "$TARGET"`})
	e.Stdin = nil
	e.Stdout = &out
	e.Env = []string{"TARGET=df.ios"}

	code, err := e.Run(context.Background(), "cfg.js", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "df.ios\n", out.String())
}

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

func TestDelayed_Run(t *testing.T) {
	f := &fakeLauncher{code: 2}
	d := Delayed{Launcher: f, Delay: 20 * time.Millisecond}

	start := time.Now()
	code, err := d.Run(context.Background(), "cfg.js", []string{"--spec", "a"})

	require.NoError(t, err)
	assert.Equal(t, 2, code)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "cfg.js", f.configPath)
	assert.Equal(t, []string{"--spec", "a"}, f.args)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDelayed_Run_Canceled(t *testing.T) {
	f := &fakeLauncher{}
	d := Delayed{Launcher: f, Delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, err := d.Run(ctx, "cfg.js", nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, code)
	assert.Equal(t, 0, f.calls)
}

func TestRunID(t *testing.T) {
	assert.Len(t, RunID(), 36)
	assert.NotEqual(t, RunID(), RunID())
}
