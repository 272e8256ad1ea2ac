package show

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/saucelabs/wdiorun/internal/msg"
	"github.com/saucelabs/wdiorun/internal/wdio"
)

const (
	JSONOutput = "json"
	YAMLOutput = "yaml"
)

// Command creates the `show` command
func Command() *cobra.Command {
	var out string
	var raw bool

	cmd := &cobra.Command{
		Use:   "show [TARGET]",
		Short: "Shows the configuration record of a target, merged over the base record",
		Long: `Shows the configuration record of a target, merged over the base record. Defaults to the target in the
TARGET environment variable. Functions and expressions are shown by their signature only.`,
		Example:      `  wdiorun show df.ios -o json`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := os.Getenv("TARGET")
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" {
				return errors.New(msg.MissingTarget)
			}

			return Show(os.Stdout, name, out, raw)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", YAMLOutput, "Output format to the console. Options: yaml, json.")
	cmd.Flags().BoolVar(&raw, "raw", false, "Show the target's own record without merging it over the base record.")

	return cmd
}

// Show writes the record of the named target to w in the given format.
func Show(w io.Writer, name, format string, raw bool) error {
	lookup := wdio.Effective
	if raw {
		lookup = wdio.Lookup
	}

	r, err := lookup(name)
	if err != nil {
		return err
	}

	switch format {
	case JSONOutput:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case YAMLOutput:
		b, err := yaml.Marshal(r)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}

	return fmt.Errorf("unknown output format %q", format)
}
