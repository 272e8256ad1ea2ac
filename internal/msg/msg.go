package msg

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
)

// ExampleTarget describes a well-known target for usage messages.
type ExampleTarget struct {
	Name        string
	Description string
}

// ExampleTargets are the targets advertised when no target is given.
var ExampleTargets = []ExampleTarget{
	{Name: "ios", Description: "Local iOS simulator testing"},
	{Name: "df.ios", Description: "AWS Device Farm iOS testing"},
}

// NoConfigsFound is shown in place of a candidate list if the config directory can't be read.
const NoConfigsFound = "No configuration files found"

// LogMissingTarget prints out how to select a target.
func LogMissingTarget(w io.Writer) {
	fmt.Fprintln(w, color.RedString("✖ %s", MissingTarget))
	fmt.Fprintln(w, "Available targets:")
	for _, t := range ExampleTargets {
		fmt.Fprintf(w, "   TARGET=%s - %s\n", t.Name, t.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example usage:")
	fmt.Fprintf(w, "   TARGET=%s wdiorun run\n", ExampleTargets[0].Name)
}

// LogConfigNotFound prints out the missing configuration along with the targets that do exist.
// A nil candidates slice means the config directory could not be read.
func LogConfigNotFound(w io.Writer, path string, candidates []string) {
	fmt.Fprintln(w, color.RedString("✖ "+ConfigNotFound, path))
	fmt.Fprintln(w, "Available configurations:")
	if candidates == nil {
		fmt.Fprintf(w, "   %s\n", NoConfigsFound)
		return
	}
	for _, c := range candidates {
		fmt.Fprintf(w, "   TARGET=%s\n", c)
	}
}

// LogRunComplete prints out a summary statement with the launcher's exit code.
func LogRunComplete(exitCode int) {
	if exitCode == 0 {
		log.Info().Int("exitCode", exitCode).Msg("Test execution completed.")
		return
	}
	log.Error().Int("exitCode", exitCode).Msg("Test execution completed with failures.")
}
