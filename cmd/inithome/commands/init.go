package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/inithome/cmd/inithome/handlers"
)

// Init returns the command for interactively creating a configuration file.
//
// This command guides users through creating an inithome configuration YAML
// file using an interactive wizard with text inputs and select prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "inithome.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create an inithome configuration file.

This command asks about:

  - Home layout (base volume path and optional subdirectory)
  - Owner identity (numeric UID and GID)
  - Directory permission mode and logging verbosity

The generated YAML is meant for local runs and debugging; inside an init
container the same values normally arrive through INITHOME_* environment
variables, which always take precedence over the file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "inithome.yaml", "Output file path")

	return cmd
}
