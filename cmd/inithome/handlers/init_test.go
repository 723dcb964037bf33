package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/inithome/internal/config"
	"github.com/imamik/inithome/internal/config/wizard"
)

func stubWizardResult() *wizard.Result {
	return &wizard.Result{
		BaseDir:      "/home",
		Subdirectory: "alice",
		UID:          "1000",
		GID:          "1000",
		Mode:         "0700",
		Verbose:      true,
	}
}

func TestInit_WritesConfig(t *testing.T) {
	origExists := fileExists
	origWizard := runWizard
	origWrite := writeConfig
	defer func() {
		fileExists = origExists
		runWizard = origWizard
		writeConfig = origWrite
	}()

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context) (*wizard.Result, error) { return stubWizardResult(), nil }

	var written *config.Config
	var writtenPath string
	writeConfig = func(cfg *config.Config, path string) error {
		written = cfg
		writtenPath = path
		return nil
	}

	err := Init(context.Background(), "out.yaml")

	require.NoError(t, err)
	assert.Equal(t, "out.yaml", writtenPath)
	require.NotNil(t, written)
	assert.Equal(t, "/home", written.Home.BaseDir)
	assert.Equal(t, 1000, written.Owner.UID)
}

func TestInit_WizardCancelPropagates(t *testing.T) {
	origWizard := runWizard
	defer func() { runWizard = origWizard }()

	canceled := errors.New("user aborted")
	runWizard = func(context.Context) (*wizard.Result, error) { return nil, canceled }

	err := Init(context.Background(), "out.yaml")
	assert.ErrorIs(t, err, canceled)
}

func TestInit_InvalidAnswersRejected(t *testing.T) {
	origWizard := runWizard
	origWrite := writeConfig
	defer func() {
		runWizard = origWizard
		writeConfig = origWrite
	}()

	runWizard = func(context.Context) (*wizard.Result, error) {
		r := stubWizardResult()
		r.UID = "not-a-number"
		return r, nil
	}

	writeCalled := false
	writeConfig = func(*config.Config, string) error {
		writeCalled = true
		return nil
	}

	err := Init(context.Background(), "out.yaml")

	require.Error(t, err)
	assert.False(t, writeCalled, "invalid answers must not be written")
}

func TestInit_WriteErrorPropagates(t *testing.T) {
	origWizard := runWizard
	origWrite := writeConfig
	defer func() {
		runWizard = origWizard
		writeConfig = origWrite
	}()

	runWizard = func(context.Context) (*wizard.Result, error) { return stubWizardResult(), nil }

	boom := errors.New("disk full")
	writeConfig = func(*config.Config, string) error { return boom }

	err := Init(context.Background(), "out.yaml")
	assert.ErrorIs(t, err, boom)
}
