package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/inithome/internal/config"
	"github.com/imamik/inithome/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg, err := result.ToConfig()
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("inithome - home directory provisioning")
	fmt.Println("======================================")
	fmt.Println()
	fmt.Println("This wizard creates a provisioning configuration.")
	fmt.Println("Inside an init container the same values normally arrive via")
	fmt.Println("INITHOME_* environment variables, which override the file.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Base directory: %s\n", cfg.Home.BaseDir)
	if cfg.Home.Subdirectory != "" {
		fmt.Printf("  Subdirectory:   %s\n", cfg.Home.Subdirectory)
	}
	fmt.Printf("  Owner:          %d:%d\n", cfg.Owner.UID, cfg.Owner.GID)
	fmt.Printf("  Mode:           %s\n", cfg.Mode)
	fmt.Println()

	fmt.Println("Next steps:")
	fmt.Printf("  inithome verify -c %s\n", outputPath)
	fmt.Printf("  inithome provision -c %s\n", outputPath)
	fmt.Println()
}
