package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/inithome/cmd/inithome/handlers"
)

// Verify returns the command that checks the home directory without
// changing anything.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: environment only)
//	--json: Emit the report as JSON instead of text
func Verify() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the home directory state without modifying it",
		Long: `Check whether the home directory exists with the requested owner and
mode, without creating or changing anything.

Output is styled when attached to a terminal and plain text otherwise.
The command exits non-zero when the directory is missing or does not match
the configuration, so it can double as a readiness probe.

Examples:
  # Human-readable report
  inithome verify -c inithome.yaml

  # Machine-readable report
  inithome verify --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Verify(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")

	return cmd
}
