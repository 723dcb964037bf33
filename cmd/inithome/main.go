// Package main is the entry point for the inithome CLI.
//
// inithome provisions a user's home directory inside an init container:
// it resolves the target path under a mounted volume, creates whatever is
// missing, applies ownership and mode, verifies the result, and exits.
// The exit code tells the orchestration layer which class of failure
// occurred.
//
// Commands: provision, verify, init, version, completion.
//
// For detailed usage information, run:
//
//	inithome --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/inithome/cmd/inithome/commands"
	"github.com/imamik/inithome/internal/provisioning"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(provisioning.ExitCode(err))
	}
}
