package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResult() *Result {
	return &Result{
		BaseDir:      "/home",
		Subdirectory: "alice/labhome",
		UID:          "1000",
		GID:          "1000",
		Mode:         "0700",
		Verbose:      true,
	}
}

func TestResult_ToConfig(t *testing.T) {
	t.Parallel()
	cfg, err := validResult().ToConfig()

	require.NoError(t, err)
	assert.Equal(t, "/home", cfg.Home.BaseDir)
	assert.Equal(t, "alice/labhome", cfg.Home.Subdirectory)
	assert.Equal(t, 1000, cfg.Owner.UID)
	assert.Equal(t, 1000, cfg.Owner.GID)
	assert.Equal(t, "0700", cfg.Mode)
	assert.True(t, cfg.Logging.Verbose)
}

func TestResult_ToConfig_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*Result)
	}{
		{name: "non-numeric uid", mutate: func(r *Result) { r.UID = "alice" }},
		{name: "non-numeric gid", mutate: func(r *Result) { r.GID = "staff" }},
		{name: "relative base", mutate: func(r *Result) { r.BaseDir = "home" }},
		{name: "traversal subdirectory", mutate: func(r *Result) { r.Subdirectory = "../../etc" }},
		{name: "bad mode", mutate: func(r *Result) { r.Mode = "0999" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := validResult()
			tt.mutate(r)

			_, err := r.ToConfig()
			require.Error(t, err)
		})
	}
}

func TestValidateBaseDir(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateBaseDir("/home"))
	assert.Error(t, validateBaseDir("home"))
	assert.Error(t, validateBaseDir(""))
}

func TestValidateSubdirectory(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateSubdirectory(""))
	assert.NoError(t, validateSubdirectory("alice/labhome"))
	assert.Error(t, validateSubdirectory("/etc"))
	assert.Error(t, validateSubdirectory("../../etc"))
	assert.Error(t, validateSubdirectory("alice/../../etc"))
}

func TestValidateOwnerID(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateOwnerID("0"))
	assert.NoError(t, validateOwnerID("1000"))
	assert.Error(t, validateOwnerID("-1"))
	assert.Error(t, validateOwnerID("4294967295"))
	assert.Error(t, validateOwnerID("alice"))
}

func TestModeOptions_DefaultFirst(t *testing.T) {
	t.Parallel()
	opts := ModeOptions()

	require.NotEmpty(t, opts)
	assert.Equal(t, "0700", opts[0].Value)
}
