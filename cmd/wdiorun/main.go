package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saucelabs/wdiorun/internal/cmd/doctor"
	"github.com/saucelabs/wdiorun/internal/cmd/generate"
	"github.com/saucelabs/wdiorun/internal/cmd/run"
	"github.com/saucelabs/wdiorun/internal/cmd/show"
	"github.com/saucelabs/wdiorun/internal/cmd/targets"
	"github.com/saucelabs/wdiorun/internal/progress"
	"github.com/saucelabs/wdiorun/internal/version"
)

var (
	cmdUse   = "wdiorun [OPTIONS] COMMAND [ARG...]"
	cmdShort = "wdiorun"
	cmdLong  = `Selects the WebdriverIO configuration of a test target and runs it with the WebdriverIO launcher.

The target is read from the TARGET environment variable:

  TARGET=ios     Local iOS simulator testing
  TARGET=df.ios  AWS Device Farm iOS testing`
)

func main() {
	cmd := &cobra.Command{
		Use:              cmdUse,
		Short:            cmdShort,
		Long:             cmdLong,
		SilenceUsage:     true,
		TraverseChildren: true,
		Version:          fmt.Sprintf("%s\n(build %s)", version.Version, version.GitCommit),
	}

	cmd.SetVersionTemplate("wdiorun version {{.Version}}\n")
	cmd.Flags().BoolP("version", "v", false, "print version")

	verbosity := cmd.PersistentFlags().Bool("verbose", false, "turn on verbose logging")
	noColor := cmd.PersistentFlags().Bool("no-color", false, "disable colorized output")

	cmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		setupLogging(*verbosity, *noColor)
	}

	cmd.AddCommand(
		run.Command(),
		targets.Command(),
		show.Command(),
		generate.Command(),
		doctor.Command(),
	)

	if err := cmd.ExecuteContext(newContext()); err != nil {
		os.Exit(1)
	}
}

func setupLogging(verbose bool, noColor bool) {
	color.NoColor = noColor
	if noColor {
		progress.Enabled = false
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.DurationFieldInteger = true
	timeFormat := "15:04:05"
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		zerolog.TimeFieldFormat = time.RFC3339Nano
		timeFormat = "15:04:05.000"
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(time.Local)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat, NoColor: noColor})
}

// newContext returns a new context that is canceled when a SIGINT is received.
func newContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	go func() {
		for range signals {
			if ctx.Err() != nil {
				os.Exit(1)
			}

			println("\nWaiting for any in-progress actions to stop... (press Ctrl-c again to exit without waiting)\n")
			cancel()
		}
	}()

	return ctx
}
