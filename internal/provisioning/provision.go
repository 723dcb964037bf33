package provisioning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Provision ensures the resolved target directory exists with the requested
// owner and mode, creating only what is missing.
//
// Existing intermediate segments are left completely untouched: a shared
// parent such as /home keeps its own owner and mode. The leaf is converged
// to the requested identity even when it already existed, so a re-run after
// an owner change heals the directory.
//
// The walk re-checks existence at use time instead of trusting the resolved
// frontier: another instance provisioning the same tree may have created a
// segment in between, and that counts as success, not as a conflict.
func Provision(resolved *ResolvedPath, req ProvisionRequest, observer Observer) (*ProvisionResult, error) {
	const phase = "create"

	result := &ProvisionResult{}
	base := filepath.Clean(req.BaseHomeDir)
	segments := segmentsBetween(base, resolved.Target)

	for i, segment := range segments {
		created, err := ensureDir(segment, req, observer)
		if err != nil {
			return result, err
		}
		if created {
			result.Created = true
		}
		observer.Progress(phase, i+1, len(segments))
	}

	if err := applyOwnership(resolved.Target, req, observer); err != nil {
		return result, err
	}

	info, err := os.Lstat(resolved.Target)
	if err != nil {
		return result, classifyOSError("stat", resolved.Target, err)
	}
	result.Mode = info.Mode().Perm()
	if uid, gid, ok := fileOwner(info); ok {
		result.UID = uid
		result.GID = gid
	}

	return result, nil
}

// ensureDir makes a single path segment exist as a directory. It reports
// whether this call created it.
func ensureDir(path string, req ProvisionRequest, observer Observer) (bool, error) {
	const phase = "create"

	info, err := os.Lstat(path)
	if err == nil {
		// Never follow a symlink inside the provisioned tree, even one
		// pointing at a directory: it would redirect ownership changes
		// outside the tree this process controls.
		if info.Mode()&fs.ModeSymlink != 0 {
			return false, PathConflictError{Path: path, Message: "existing entry is a symbolic link"}
		}
		if !info.IsDir() {
			return false, PathConflictError{Path: path, Message: "existing entry is not a directory"}
		}
		LogSegmentExists(observer, phase, path)
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, classifyOSError("stat", path, err)
	}

	observer.Event(Event{
		Type:    EventSegmentCreating,
		Phase:   phase,
		Path:    path,
		Message: "creating directory",
	})

	if mkErr := os.Mkdir(path, req.DirMode); mkErr != nil {
		if errors.Is(mkErr, fs.ErrExist) {
			// A concurrent run won the race. Re-inspect what it made.
			return ensureDir(path, req, observer)
		}
		return false, classifyOSError("mkdir", path, mkErr)
	}

	// Ownership is applied immediately after creation, before descending,
	// to bound the window in which the fresh directory carries default
	// ownership.
	if err := applyOwnership(path, req, observer); err != nil {
		return true, err
	}

	LogSegmentCreated(observer, phase, path)
	return true, nil
}

// applyOwnership sets the requested owner and permission bits on path.
// Mkdir's mode argument is filtered by the process umask, so the exact bits
// are always set with an explicit chmod.
func applyOwnership(path string, req ProvisionRequest, observer Observer) error {
	if err := os.Chown(path, req.OwnerUID, req.OwnerGID); err != nil {
		return classifyOSError("chown", path, err)
	}
	if err := os.Chmod(path, req.DirMode); err != nil {
		return classifyOSError("chmod", path, err)
	}

	LogOwnershipApplied(observer, "create", path, req.OwnerUID, req.OwnerGID, fmt.Sprintf("%O", req.DirMode))
	return nil
}

// CreatePhase implements the Phase interface for the segment walk.
type CreatePhase struct{}

// NewCreatePhase creates a new create phase.
func NewCreatePhase() *CreatePhase {
	return &CreatePhase{}
}

// Name implements the Phase interface.
func (cp *CreatePhase) Name() string {
	return "create"
}

// Provision implements the Phase interface.
func (cp *CreatePhase) Provision(ctx *Context) error {
	if ctx.State.Resolved == nil {
		return fmt.Errorf("create phase requires a resolved path")
	}

	result, err := Provision(ctx.State.Resolved, ctx.Request, ctx.Observer)
	ctx.State.Result = result
	return err
}
