package wizard

import "github.com/charmbracelet/huh"

// ModeOptions returns the directory mode choices offered by the wizard.
// Owner-only is the default; the group-accessible variants exist for
// shared-analysis deployments where a project group reads home data.
func ModeOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("0700 - owner only (recommended)", "0700"),
		huh.NewOption("0750 - group may list and read", "0750"),
		huh.NewOption("0770 - group has full access", "0770"),
	}
}
