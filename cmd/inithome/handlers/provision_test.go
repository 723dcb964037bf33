package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/inithome/internal/config"
	"github.com/imamik/inithome/internal/provisioning"
)

// setProvisionEnv points the environment at a temp volume. Tests using it
// cannot run in parallel.
func setProvisionEnv(t *testing.T, base, subdir string) {
	t.Helper()
	t.Setenv("INITHOME_HOME_BASE_DIR", base)
	t.Setenv("INITHOME_HOME_SUBDIRECTORY", subdir)
	t.Setenv("INITHOME_OWNER_UID", strconv.Itoa(os.Getuid()))
	t.Setenv("INITHOME_OWNER_GID", strconv.Itoa(os.Getgid()))
	t.Setenv("INITHOME_MODE", "0700")
}

func TestProvision_EndToEnd(t *testing.T) {
	base := t.TempDir()
	setProvisionEnv(t, base, "alice/labhome")

	err := Provision(context.Background(), "")

	require.NoError(t, err)
	info, statErr := os.Lstat(filepath.Join(base, "alice", "labhome"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestProvision_SecondRunSucceeds(t *testing.T) {
	base := t.TempDir()
	setProvisionEnv(t, base, "labhome")

	require.NoError(t, Provision(context.Background(), ""))
	require.NoError(t, Provision(context.Background(), ""))
}

func TestProvision_TraversalRejectedBeforeMutation(t *testing.T) {
	base := t.TempDir()
	setProvisionEnv(t, base, "../../etc")

	err := Provision(context.Background(), "")

	var configErr provisioning.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, provisioning.ExitConfiguration, provisioning.ExitCode(err))

	entries, readErr := os.ReadDir(base)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestProvision_ConfigLoadErrorPropagates(t *testing.T) {
	origLoad := loadConfig
	defer func() { loadConfig = origLoad }()

	boom := errors.New("bad config")
	loadConfig = func(string) (*config.Config, error) { return nil, boom }

	err := Provision(context.Background(), "irrelevant.yaml")
	assert.ErrorIs(t, err, boom)
}

func TestProvision_PipelineErrorPropagates(t *testing.T) {
	origLoad := loadConfig
	origRun := runPhases
	defer func() {
		loadConfig = origLoad
		runPhases = origRun
	}()

	loadConfig = func(string) (*config.Config, error) {
		return &config.Config{
			Logging: config.LoggingConfig{Verbose: true},
			Home:    config.HomeConfig{BaseDir: "/home", Subdirectory: "alice"},
			Owner:   config.OwnerConfig{UID: 1000, GID: 1000},
			Mode:    "0700",
		}, nil
	}
	runPhases = func(*provisioning.Context, []provisioning.Phase) error {
		return provisioning.PermissionError{Op: "chown", Path: "/home/alice", Err: os.ErrPermission}
	}

	err := Provision(context.Background(), "")

	var permErr provisioning.PermissionError
	require.ErrorAs(t, err, &permErr)
}

func TestProvision_FileConflictSurfacesExitCode(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "labhome"), nil, 0o600))
	setProvisionEnv(t, base, "labhome")

	err := Provision(context.Background(), "")

	assert.Equal(t, provisioning.ExitPathConflict, provisioning.ExitCode(err))
}
