package provisioning

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(req ProvisionRequest) *Context {
	return &Context{
		Context:  context.Background(),
		Request:  req,
		State:    NewState(),
		Observer: NopObserver{},
	}
}

func TestRunPhases_FullPipeline(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	ctx := testContext(testRequest(base, "alice/labhome"))

	err := RunPhases(ctx, DefaultPhases())

	require.NoError(t, err)
	require.NotNil(t, ctx.State.Resolved)
	require.NotNil(t, ctx.State.Result)
	assert.True(t, ctx.State.Result.Created)
	assert.Equal(t, os.Getuid(), ctx.State.Result.UID)
	assert.Equal(t, os.FileMode(0o700), ctx.State.Result.Mode)

	info, statErr := os.Lstat(filepath.Join(base, "alice", "labhome"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestRunPhases_SecondRunSucceeds(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	req := testRequest(base, "labhome")

	require.NoError(t, RunPhases(testContext(req), DefaultPhases()))

	ctx := testContext(req)
	require.NoError(t, RunPhases(ctx, DefaultPhases()))
	assert.False(t, ctx.State.Result.Created)
}

type stubPhase struct {
	name string
	err  error
	ran  *bool
}

func (s stubPhase) Name() string { return s.name }

func (s stubPhase) Provision(*Context) error {
	if s.ran != nil {
		*s.ran = true
	}
	return s.err
}

func TestRunPhases_AbortsOnFirstFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	laterRan := false

	phases := []Phase{
		stubPhase{name: "first"},
		stubPhase{name: "second", err: boom},
		stubPhase{name: "third", ran: &laterRan},
	}

	err := RunPhases(testContext(validRequest()), phases)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "second phase failed")
	assert.False(t, laterRan, "phases after a failure must not run")
}

func TestRunPhases_ErrorClassSurvivesWrapping(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	req := testRequest(base, "../../etc")

	err := RunPhases(testContext(req), DefaultPhases())

	var configErr ConfigurationError
	require.ErrorAs(t, err, &configErr, "wrapping by the pipeline must keep the error classifiable")
}

func TestDefaultPhases_Order(t *testing.T) {
	t.Parallel()
	phases := DefaultPhases()

	require.Len(t, phases, 4)
	assert.Equal(t, "validation", phases[0].Name())
	assert.Equal(t, "resolve", phases[1].Name())
	assert.Equal(t, "create", phases[2].Name())
	assert.Equal(t, "verify", phases[3].Name())
}
