package run

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saucelabs/wdiorun/internal/appium"
	"github.com/saucelabs/wdiorun/internal/ci"
	"github.com/saucelabs/wdiorun/internal/launcher"
	"github.com/saucelabs/wdiorun/internal/msg"
	"github.com/saucelabs/wdiorun/internal/resolver"
	"github.com/saucelabs/wdiorun/internal/settings"
	"github.com/saucelabs/wdiorun/internal/target"
)

var (
	runUse   = "run [ARG...]"
	runShort = "Runs the WebdriverIO tests of the target selected by TARGET"
	runLong  = `Resolves the configuration of the target named by the TARGET environment variable and hands it over to
the WebdriverIO launcher. All arguments are passed on to the launcher as is.

Local targets are looked up as <configDir>/<target>.config.ts when running from source and as
<configDir>/<target>.config.js when running from pre-built artifacts. Device Farm targets (prefixed with "df."
or running on a host that sets DEVICEFARM_DEVICE_POOL_ARN) always use <configDir>/<target>.config.js.`
	runExample = `  TARGET=ios wdiorun run
  TARGET=df.ios wdiorun run --spec ./src/tests/setup/framework.test.js`
)

// Command creates the `run` command
func Command() *cobra.Command {
	return &cobra.Command{
		Use:                runUse,
		Short:              runShort,
		Long:               runLong,
		Example:            runExample,
		SilenceUsage:       true,
		DisableFlagParsing: true,
		Run: func(cmd *cobra.Command, args []string) {
			exitCode, err := Run(cmd.Context(), args)
			if err != nil {
				log.Err(err).Msg("Test execution failed.")
			}
			os.Exit(exitCode)
		},
	}
}

// Run loads the settings of the current working directory and runs the tests.
func Run(ctx context.Context, args []string) (int, error) {
	s, err := settings.Load(".")
	if err != nil {
		return 1, err
	}

	r := Runner{Settings: s, WorkDir: "."}
	return r.Run(ctx, args)
}

// Runner resolves the configuration of a target and delegates to a launcher.
type Runner struct {
	Settings settings.Settings
	WorkDir  string
	// Launcher runs the tests. If nil, the launcher command from Settings is used.
	Launcher launcher.Launcher
	// Stdout receives the usage and candidate listings. Defaults to os.Stdout.
	Stdout io.Writer
}

// Run runs the tests once and returns the exit code the process should terminate with.
func (r *Runner) Run(ctx context.Context, args []string) (int, error) {
	log.Info().Msg("Starting WebdriverIO test execution.")
	if ci.IsAvailable() {
		log.Info().Str("provider", ci.GetProvider().Name).Msg("CI environment detected.")
	}

	t := target.New(r.Settings.Target, r.Settings.DevicePoolARN)
	if t.IsEmpty() {
		msg.LogMissingTarget(r.stdout())
		return 1, nil
	}

	mode, err := resolver.ParseMode(r.Settings.Mode)
	if err != nil {
		return 1, err
	}
	mode = resolver.DetectMode(mode, r.WorkDir)

	log.Info().Str("target", t.Name).Msg("Loading configuration.")
	res, err := resolver.New(r.Settings.ConfigDir, mode).Resolve(t)

	var nf *resolver.NotFoundError
	if errors.As(err, &nf) {
		msg.LogConfigNotFound(r.stdout(), nf.Path, nf.Candidates)
		return 1, nil
	}
	if err != nil {
		return 1, err
	}

	wd, err := filepath.Abs(r.WorkDir)
	if err != nil {
		wd = r.WorkDir
	}
	log.Info().
		Str("path", res.Path).
		Str("mode", string(res.Mode)).
		Str("context", string(t.Context())).
		Str("workDir", wd).
		Msg("Configuration loaded.")

	if t.IsDeviceFarm() {
		pool := r.Settings.DevicePoolARN
		if pool == "" {
			pool = "not set"
		}
		log.Info().Str("devicePoolARN", pool).Msg("Device Farm environment detected.")
	} else if r.Settings.Appium.StatusURL != "" {
		if err := appium.New(r.Settings.Appium.StatusURL).WaitUntilReady(ctx, r.Settings.Appium.Timeout); err != nil {
			return 1, err
		}
	}

	if len(args) > 0 {
		log.Info().Strs("args", args).Msg("Running with arguments.")
	}

	exitCode, err := r.launcher(t).Run(ctx, res.Path, args)
	if err != nil {
		return 1, err
	}

	msg.LogRunComplete(exitCode)
	return exitCode, nil
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) launcher(t target.Target) launcher.Launcher {
	if r.Launcher != nil {
		return r.Launcher
	}

	runID := launcher.RunID()
	log.Info().Str("runID", runID).Msg("Handing over to the launcher.")

	e := launcher.NewExec(r.Settings.Launcher)
	e.Dir = r.WorkDir
	e.Env = []string{"TARGET=" + t.Name, "WDIO_RUN_ID=" + runID}

	return launcher.Delayed{Launcher: e, Delay: r.Settings.Delay()}
}
