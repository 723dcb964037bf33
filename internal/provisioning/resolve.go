package provisioning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Resolve computes the absolute target path for req and discovers the
// creation frontier. It performs read-only stat checks and never mutates
// the filesystem.
//
// The base directory must already exist: it is a volume mount delivered by
// the orchestration layer, and creating it here would silently provision
// onto the container's ephemeral disk instead of the mounted storage.
func Resolve(req ProvisionRequest) (*ResolvedPath, error) {
	base := filepath.Clean(req.BaseHomeDir)
	if base == "" || !filepath.IsAbs(base) {
		return nil, ConfigurationError{
			Field:   "BaseHomeDir",
			Message: fmt.Sprintf("must be an absolute path, got %q", req.BaseHomeDir),
		}
	}

	// The base is trusted configuration, so following a symlinked mount
	// point here is fine. Everything below it is not followed.
	info, err := os.Stat(base)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, ConfigurationError{
			Field:   "BaseHomeDir",
			Message: fmt.Sprintf("%s does not exist", base),
		}
	case err != nil:
		return nil, classifyOSError("stat", base, err)
	case !info.IsDir():
		return nil, ConfigurationError{
			Field:   "BaseHomeDir",
			Message: fmt.Sprintf("%s is not a directory", base),
		}
	}

	target := base
	if req.Subdirectory != "" {
		target = filepath.Join(base, req.Subdirectory)
		rel, relErr := filepath.Rel(base, target)
		if relErr != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			return nil, ConfigurationError{
				Field:   "Subdirectory",
				Message: fmt.Sprintf("%q escapes the base home directory", req.Subdirectory),
			}
		}
	}

	resolved := &ResolvedPath{Target: target, Existing: base}
	for _, seg := range segmentsBetween(base, target) {
		if len(resolved.Missing) > 0 {
			// Everything below the first missing segment is missing too.
			resolved.Missing = append(resolved.Missing, seg)
			continue
		}

		_, segErr := os.Lstat(seg)
		switch {
		case segErr == nil:
			resolved.Existing = seg
		case errors.Is(segErr, fs.ErrNotExist):
			resolved.Missing = append(resolved.Missing, seg)
		default:
			return nil, classifyOSError("stat", seg, segErr)
		}
	}

	return resolved, nil
}

// segmentsBetween returns the absolute paths of every path segment strictly
// below base down to target, shallowest first. Both arguments must be
// cleaned absolute paths with target at or below base.
func segmentsBetween(base, target string) []string {
	if target == base {
		return nil
	}

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return nil
	}

	parts := strings.Split(rel, string(os.PathSeparator))
	segments := make([]string, 0, len(parts))
	current := base
	for _, part := range parts {
		current = filepath.Join(current, part)
		segments = append(segments, current)
	}
	return segments
}

// ResolvePhase implements the Phase interface for path resolution.
type ResolvePhase struct{}

// NewResolvePhase creates a new resolve phase.
func NewResolvePhase() *ResolvePhase {
	return &ResolvePhase{}
}

// Name implements the Phase interface.
func (rp *ResolvePhase) Name() string {
	return "resolve"
}

// Provision implements the Phase interface.
func (rp *ResolvePhase) Provision(ctx *Context) error {
	resolved, err := Resolve(ctx.Request)
	if err != nil {
		return err
	}

	ctx.State.Resolved = resolved
	ctx.Observer.Printf("[Resolve] target %s, %d segment(s) to create", resolved.Target, len(resolved.Missing))
	return nil
}
