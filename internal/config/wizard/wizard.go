package wizard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/imamik/inithome/internal/config"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Home layout
	BaseDir      string
	Subdirectory string

	// Owner identity, kept as strings while the form runs
	UID string
	GID string

	// Mode is the octal permission string for created directories
	Mode string

	// Verbose enables per-segment diagnostic output
	Verbose bool
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{
		BaseDir: config.DefaultBaseDir,
		Mode:    config.DefaultMode,
		Verbose: true,
	}

	if err := runHomeGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("home layout: %w", err)
	}

	if err := runOwnerGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("owner identity: %w", err)
	}

	if err := runModeGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("permissions: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard answers into a validated configuration.
func (r *Result) ToConfig() (*config.Config, error) {
	uid, err := strconv.Atoi(r.UID)
	if err != nil {
		return nil, fmt.Errorf("uid %q is not a number: %w", r.UID, err)
	}
	gid, err := strconv.Atoi(r.GID)
	if err != nil {
		return nil, fmt.Errorf("gid %q is not a number: %w", r.GID, err)
	}

	cfg := &config.Config{
		Logging: config.LoggingConfig{Verbose: r.Verbose},
		Home: config.HomeConfig{
			BaseDir:      r.BaseDir,
			Subdirectory: r.Subdirectory,
		},
		Owner: config.OwnerConfig{UID: uid, GID: gid},
		Mode:  r.Mode,
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
