package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/inithome/cmd/inithome/handlers"
)

// Provision returns the command that provisions the home directory.
//
// This is the init-container entry point: it loads configuration, resolves
// the target path, creates missing directory segments with the requested
// ownership and mode, and verifies the final state.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: environment only)
//
// Environment variables:
//
//	INITHOME_HOME_BASE_DIR:      mounted home volume (default /home)
//	INITHOME_HOME_SUBDIRECTORY:  optional subdirectory forming the target
//	INITHOME_OWNER_UID:          owner user ID (required)
//	INITHOME_OWNER_GID:          owner group ID (required)
//	INITHOME_MODE:               octal permission mode (default 0700)
func Provision() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create the home directory with the requested owner and mode",
		Long: `Create the user's home directory before the lab workload starts.

The target path is resolved from the configured base directory and optional
subdirectory. Missing segments are created one by one, each receiving the
requested owner and mode immediately after creation. Pre-existing ancestors
are left untouched; the leaf directory is converged to the requested
identity even when it already existed.

Running provision twice is safe: the second run changes nothing and
succeeds. Concurrent runs against the same volume converge to the same
state.

Exit codes:
  0  provisioned and verified
  2  invalid configuration (no filesystem change attempted)
  3  a non-directory entry blocks the path
  4  insufficient permissions to create or chown
  5  final state does not match the request

Examples:
  # Provision from environment variables (init container)
  inithome provision

  # Provision using a config file
  inithome provision -c inithome.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	return cmd
}
