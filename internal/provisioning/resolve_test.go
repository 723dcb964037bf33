package provisioning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(base, subdir string) ProvisionRequest {
	return ProvisionRequest{
		BaseHomeDir:  base,
		Subdirectory: subdir,
		OwnerUID:     os.Getuid(),
		OwnerGID:     os.Getgid(),
		DirMode:      0o700,
	}
}

func TestResolve_TargetIsBase(t *testing.T) {
	t.Parallel()
	base := t.TempDir()

	resolved, err := Resolve(testRequest(base, ""))

	require.NoError(t, err)
	assert.Equal(t, base, resolved.Target)
	assert.Equal(t, base, resolved.Existing)
	assert.Empty(t, resolved.Missing)
}

func TestResolve_Frontier(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "alice"), 0o755))

	resolved, err := Resolve(testRequest(base, "alice/labhome/notebooks"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "alice", "labhome", "notebooks"), resolved.Target)
	assert.Equal(t, filepath.Join(base, "alice"), resolved.Existing)
	assert.Equal(t, []string{
		filepath.Join(base, "alice", "labhome"),
		filepath.Join(base, "alice", "labhome", "notebooks"),
	}, resolved.Missing)
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	t.Parallel()
	base := t.TempDir()

	filePath := filepath.Join(base, "notadir")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o600))

	tests := []struct {
		name   string
		base   string
		subdir string
		field  string
	}{
		{
			name:  "empty base",
			base:  "",
			field: "BaseHomeDir",
		},
		{
			name:  "relative base",
			base:  "home/alice",
			field: "BaseHomeDir",
		},
		{
			name:  "missing base",
			base:  filepath.Join(base, "does-not-exist"),
			field: "BaseHomeDir",
		},
		{
			name:  "base is a file",
			base:  filePath,
			field: "BaseHomeDir",
		},
		{
			name:   "traversal subdirectory",
			base:   base,
			subdir: "../../etc",
			field:  "Subdirectory",
		},
		{
			name:   "nested traversal escaping base",
			base:   base,
			subdir: "alice/../../outside",
			field:  "Subdirectory",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(testRequest(tt.base, tt.subdir))

			var configErr ConfigurationError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestResolve_TraversalPerformsNoMutation(t *testing.T) {
	t.Parallel()
	base := t.TempDir()

	_, err := Resolve(testRequest(base, "../../etc"))
	require.Error(t, err)

	entries, readErr := os.ReadDir(base)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "resolver must not create anything")
}

func TestResolve_InternalDotDotThatStaysInside(t *testing.T) {
	t.Parallel()
	base := t.TempDir()

	// Cleans to "labhome", which stays under base. The stricter component
	// check lives in ValidateRequest; the resolver only rejects escapes.
	resolved, err := Resolve(testRequest(base, "alice/../labhome"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "labhome"), resolved.Target)
}

func TestSegmentsBetween(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		base   string
		target string
		want   []string
	}{
		{
			name:   "equal paths",
			base:   "/home",
			target: "/home",
			want:   nil,
		},
		{
			name:   "single segment",
			base:   "/home",
			target: "/home/alice",
			want:   []string{"/home/alice"},
		},
		{
			name:   "multiple segments",
			base:   "/home",
			target: "/home/alice/labhome",
			want:   []string{"/home/alice", "/home/alice/labhome"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, segmentsBetween(tt.base, tt.target))
		})
	}
}
