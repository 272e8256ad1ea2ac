package doctor

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saucelabs/wdiorun/internal/doctor"
	"github.com/saucelabs/wdiorun/internal/settings"
)

// Command creates the `doctor` command
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "doctor",
		Short:        "Runs a series of checks to ensure that your environment is ready to run tests",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			s, err := settings.Load(".")
			if err != nil {
				log.Err(err).Msg("Failed to load settings.")
				os.Exit(1)
			}

			fmt.Println("[•] Environment")
			if err := doctor.Verify(os.Stdout, doctor.Checks(".", s.ConfigDir, s.Target)); err != nil {
				os.Exit(1)
			}
		},
	}

	return cmd
}
