package provisioning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// FileState is a read-only snapshot of a directory entry, taken without
// following symlinks.
type FileState struct {
	Exists      bool
	IsDirectory bool
	IsSymlink   bool

	// OwnerKnown is false on filesystems whose stat does not report
	// ownership; UID and GID are meaningless then.
	OwnerKnown bool
	UID        int
	GID        int

	Mode os.FileMode
}

// Stat inspects path without mutating or following it. A missing entry is
// not an error; only unexpected stat failures are.
func Stat(path string) (FileState, error) {
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return FileState{}, nil
	case err != nil:
		return FileState{}, classifyOSError("stat", path, err)
	}

	state := FileState{
		Exists:      true,
		IsDirectory: info.IsDir(),
		IsSymlink:   info.Mode()&fs.ModeSymlink != 0,
		Mode:        info.Mode().Perm(),
	}
	state.UID, state.GID, state.OwnerKnown = fileOwner(info)
	return state, nil
}

// Verify re-stats the leaf directory and confirms owner, group, and mode
// match the request. On mismatch the observed state is still returned next
// to the VerificationError.
//
// Verification failures are deliberately distinct from creation failures:
// some network filesystems accept a chown and silently drop it, and an
// operator needs to tell "the platform rejected the change" apart from
// "the change was never made".
func Verify(target string, req ProvisionRequest) (*ProvisionResult, error) {
	state, err := Stat(target)
	if err != nil {
		return nil, err
	}

	switch {
	case !state.Exists:
		return nil, VerificationError{Path: target, Message: "directory does not exist"}
	case !state.IsDirectory:
		return nil, VerificationError{Path: target, Message: "not a directory"}
	case !state.OwnerKnown:
		return nil, VerificationError{Path: target, Message: "filesystem does not report ownership"}
	}

	observed := &ProvisionResult{
		UID:  state.UID,
		GID:  state.GID,
		Mode: state.Mode,
	}

	var mismatches []string
	if state.UID != req.OwnerUID {
		mismatches = append(mismatches, fmt.Sprintf("uid %d, want %d", state.UID, req.OwnerUID))
	}
	if state.GID != req.OwnerGID {
		mismatches = append(mismatches, fmt.Sprintf("gid %d, want %d", state.GID, req.OwnerGID))
	}
	if state.Mode != req.DirMode {
		mismatches = append(mismatches, fmt.Sprintf("mode %O, want %O", state.Mode, req.DirMode))
	}

	if len(mismatches) > 0 {
		return observed, VerificationError{Path: target, Message: strings.Join(mismatches, ", ")}
	}

	return observed, nil
}

// VerifyPhase implements the Phase interface for the final-state check.
type VerifyPhase struct{}

// NewVerifyPhase creates a new verify phase.
func NewVerifyPhase() *VerifyPhase {
	return &VerifyPhase{}
}

// Name implements the Phase interface.
func (vp *VerifyPhase) Name() string {
	return "verify"
}

// Provision implements the Phase interface.
func (vp *VerifyPhase) Provision(ctx *Context) error {
	if ctx.State.Resolved == nil {
		return fmt.Errorf("verify phase requires a resolved path")
	}

	observed, err := Verify(ctx.State.Resolved.Target, ctx.Request)
	if err != nil {
		ctx.Observer.Event(Event{
			Type:    EventVerifyFailed,
			Phase:   vp.Name(),
			Path:    ctx.State.Resolved.Target,
			Message: err.Error(),
		})
		return err
	}

	if ctx.State.Result == nil {
		ctx.State.Result = observed
	} else {
		// Keep the Created flag from the create phase, trust the verify
		// stat for the final owner and mode.
		ctx.State.Result.UID = observed.UID
		ctx.State.Result.GID = observed.GID
		ctx.State.Result.Mode = observed.Mode
	}

	ctx.Observer.Event(Event{
		Type:    EventVerifyPassed,
		Phase:   vp.Name(),
		Path:    ctx.State.Resolved.Target,
		Message: fmt.Sprintf("owner %d:%d mode %O", observed.UID, observed.GID, observed.Mode),
	})
	return nil
}
