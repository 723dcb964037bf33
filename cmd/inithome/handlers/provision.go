// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"log"

	"github.com/imamik/inithome/internal/config"
	"github.com/imamik/inithome/internal/provisioning"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads the configuration from file and environment.
	loadConfig = config.Load

	// runPhases executes the provisioning pipeline.
	runPhases = provisioning.RunPhases
)

// Provision provisions the user's home directory.
//
// This function orchestrates the complete provisioning workflow:
//  1. Loads and validates configuration (environment and optional file)
//  2. Runs the validation, resolve, create, and verify phases
//  3. Reports the final state
//
// Partial progress is never rolled back: any segments already created are
// valid state a subsequent run completes, which is what makes container
// restarts a safe retry mechanism.
func Provision(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	req, err := cfg.ToRequest()
	if err != nil {
		return err
	}

	log.Printf("Provisioning %s for owner %d:%d", req.Target(), req.OwnerUID, req.OwnerGID)

	pctx := provisioning.NewContext(ctx, req)
	if !cfg.Logging.Verbose {
		pctx.Observer = provisioning.NewConsoleObserver().Quiet()
	}

	if err := runPhases(pctx, provisioning.DefaultPhases()); err != nil {
		return err
	}

	result := pctx.State.Result
	action := "already present, ownership verified"
	if result.Created {
		action = "created"
	}
	log.Printf("Home directory %s %s (owner %d:%d, mode %O)",
		pctx.State.Resolved.Target, action, result.UID, result.GID, result.Mode)

	return nil
}
