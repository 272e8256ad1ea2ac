// Package launcher hands a resolved configuration over to the WebdriverIO launcher.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/saucelabs/wdiorun/internal/msg"
	"github.com/saucelabs/wdiorun/internal/progress"
)

// Launcher runs a test session with the given configuration file.
type Launcher interface {
	// Run starts the launcher and blocks until it has finished. The returned exit code is only meaningful if
	// err is nil.
	Run(ctx context.Context, configPath string, args []string) (int, error)
}

// Exec launches an external command, e.g. `npx wdio run`, with the configuration path and the given args
// appended.
type Exec struct {
	Command []string
	Dir     string
	// Env is added on top of the environment of the current process.
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns an Exec for command that is wired to the standard streams of the current process.
func NewExec(command []string) *Exec {
	return &Exec{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Run runs the command once and returns its exit code.
func (e *Exec) Run(ctx context.Context, configPath string, args []string) (int, error) {
	if len(e.Command) == 0 {
		return 1, errors.New(msg.EmptyLauncherCommand)
	}

	cmdArgs := append(append(append([]string{}, e.Command[1:]...), configPath), args...)
	cmd := exec.CommandContext(ctx, e.Command[0], cmdArgs...)
	cmd.Dir = e.Dir
	cmd.Env = append(os.Environ(), e.Env...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	log.Debug().Str("command", strings.Join(cmd.Args, " ")).Msg("Starting launcher.")
	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 1, fmt.Errorf("%s: %w", msg.LauncherFailed, err)
	}

	return 0, nil
}

// RunID returns a new identifier that is passed on to the launcher as WDIO_RUN_ID.
func RunID() string {
	return uuid.New().String()
}

// Delayed waits for Delay before handing over to Launcher.
type Delayed struct {
	Launcher Launcher
	Delay    time.Duration
}

// Run waits for the delay to pass, then runs the wrapped launcher. The wait ends early if ctx is done.
func (d Delayed) Run(ctx context.Context, configPath string, args []string) (int, error) {
	if d.Delay > 0 {
		progress.Show("Waiting %s before starting tests", d.Delay)
		err := sleep(ctx, d.Delay)
		progress.Stop()
		if err != nil {
			return 1, err
		}
	}

	return d.Launcher.Run(ctx, configPath, args)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
