package targets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ryanuber/go-glob"
	"github.com/spf13/cobra"

	"github.com/saucelabs/wdiorun/internal/fpath"
	"github.com/saucelabs/wdiorun/internal/resolver"
	"github.com/saucelabs/wdiorun/internal/settings"
	"github.com/saucelabs/wdiorun/internal/tables"
	"github.com/saucelabs/wdiorun/internal/target"
)

const (
	JSONOutput = "json"
	TextOutput = "text"
)

// Target is a selectable target as found in the config directory.
type Target struct {
	Name    string         `json:"name"`
	Context target.Context `json:"context"`
	File    string         `json:"file"`
}

// Command creates the `targets` command
func Command() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:          "targets [PATTERN]",
		Aliases:      []string{"ls"},
		Short:        "Lists the targets that can be selected via TARGET",
		Example:      `  wdiorun targets 'df.*'`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != JSONOutput && out != TextOutput {
				return errors.New("unknown output format")
			}

			s, err := settings.Load(".")
			if err != nil {
				return err
			}

			pattern := "*"
			if len(args) > 0 {
				pattern = args[0]
			}

			tt, err := List(s.ConfigDir, pattern)
			if err != nil {
				return fmt.Errorf("failed to list targets: %w", err)
			}

			if out == JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(tt)
			}
			renderTable(os.Stdout, tt)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", TextOutput, "Output format to the console. Options: text, json.")

	return cmd
}

// List returns every configuration file in configDir whose target name matches pattern. Pattern supports '*'
// wildcards only.
func List(configDir, pattern string) ([]Target, error) {
	files, err := fpath.FindFiles(configDir, resolver.CandidatePattern)
	if err != nil {
		return nil, err
	}

	tt := []Target{}
	for _, f := range files {
		name := resolver.TargetName(f)
		if !glob.Glob(pattern, name) {
			continue
		}
		tt = append(tt, Target{
			Name:    name,
			Context: target.ContextOf(name),
			File:    f,
		})
	}
	return tt, nil
}

func renderTable(w io.Writer, tt []Target) {
	if len(tt) == 0 {
		fmt.Fprintln(w, "No targets found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(tables.Style())
	t.SuppressEmptyColumns()

	t.AppendHeader(table.Row{"Target", "Context", "File"})
	for _, item := range tt {
		// the order of values must match the order of the header
		t.AppendRow(table.Row{
			item.Name,
			item.Context,
			item.File,
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d files", len(tt))})

	t.Render()
}
