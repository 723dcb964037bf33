package wizard

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/inithome/internal/provisioning"
)

// runHomeGroup prompts for the base volume path and optional subdirectory.
func runHomeGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Base Home Directory").
				Description("Absolute path of the mounted home volume (must already exist at runtime)").
				Placeholder("/home").
				Value(&result.BaseDir).
				Validate(validateBaseDir),
			huh.NewInput().
				Title("Subdirectory (Optional)").
				Description("Relative path under the base directory, e.g. alice/labhome. Leave empty to use the base directory itself.").
				Placeholder("alice/labhome (or leave empty)").
				Value(&result.Subdirectory).
				Validate(validateSubdirectory),
		).Title("Home Layout"),
	).RunWithContext(ctx)
}

// runOwnerGroup prompts for the numeric owner identity.
func runOwnerGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Owner UID").
				Description(fmt.Sprintf("Numeric user ID, 0-%d", provisioning.MaxOwnerID)).
				Placeholder("1000").
				Value(&result.UID).
				Validate(validateOwnerID),
			huh.NewInput().
				Title("Owner GID").
				Description(fmt.Sprintf("Numeric primary group ID, 0-%d", provisioning.MaxOwnerID)).
				Placeholder("1000").
				Value(&result.GID).
				Validate(validateOwnerID),
		).Title("Owner Identity"),
	).RunWithContext(ctx)
}

// runModeGroup prompts for the directory permission mode and verbosity.
func runModeGroup(ctx context.Context, result *Result) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Directory Mode").
				Description("Permission bits applied to every created directory").
				Options(ModeOptions()...).
				Value(&result.Mode),
			huh.NewConfirm().
				Title("Verbose Logging").
				Description("Log every created segment individually").
				Value(&result.Verbose),
		).Title("Permissions"),
	).RunWithContext(ctx)
}

// validateBaseDir rejects relative or empty base paths.
func validateBaseDir(s string) error {
	if !filepath.IsAbs(s) {
		return fmt.Errorf("must be an absolute path")
	}
	return nil
}

// validateSubdirectory rejects absolute and traversal-carrying values.
func validateSubdirectory(s string) error {
	if s == "" {
		return nil
	}
	if filepath.IsAbs(s) {
		return fmt.Errorf("must be relative to the base directory")
	}
	for _, part := range strings.Split(filepath.ToSlash(s), "/") {
		if part == ".." {
			return fmt.Errorf("must not contain parent-directory components")
		}
	}
	return nil
}

// validateOwnerID rejects non-numeric and out-of-range identities.
func validateOwnerID(s string) error {
	id, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if id < 0 || id > provisioning.MaxOwnerID {
		return fmt.Errorf("must be between 0 and %d", provisioning.MaxOwnerID)
	}
	return nil
}
