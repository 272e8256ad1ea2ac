package generate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saucelabs/wdiorun/internal/resolver"
	"github.com/saucelabs/wdiorun/internal/settings"
	"github.com/saucelabs/wdiorun/internal/wdio"
)

// Command creates the `generate` command
func Command() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "generate [TARGET...]",
		Short: "Generates the WebdriverIO config modules of the built-in targets",
		Long: `Generates <target>.config.js for the given targets, or all built-in targets if none are given. Every
record is merged over the base record and validated before it is written.`,
		Example:      `  wdiorun generate df.ios --out-dir dist/wdio/configs`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				s, err := settings.Load(".")
				if err != nil {
					return err
				}
				outDir = s.ConfigDir
			}

			names := args
			if len(names) == 0 {
				names = wdio.Names()
			}

			_, err := Generate(outDir, names)
			return err
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory to write the config modules to. Defaults to the config directory.")

	return cmd
}

// Generate writes the config modules of names to outDir and returns their paths. Nothing is written if any of
// the records is invalid.
func Generate(outDir string, names []string) ([]string, error) {
	records := make([]wdio.Record, len(names))
	for i, name := range names {
		r, err := wdio.Effective(name)
		if err != nil {
			return nil, err
		}
		if err := wdio.Validate(r); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		records[i] = r
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for i, name := range names {
		p := filepath.Join(outDir, name+resolver.ConfigSuffix+resolver.ModeCompiled.Ext())
		if err := writeFile(p, records[i]); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", p, err)
		}
		log.Info().Str("target", name).Str("file", p).Msg("Generated config.")
		paths = append(paths, p)
	}

	return paths, nil
}

func writeFile(name string, r wdio.Record) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := wdio.Render(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
