package provisioning

import (
	"errors"
	"fmt"
	"os"
)

// ConfigurationError reports invalid or unsafe input. It is raised before
// any filesystem mutation is attempted and is never retried.
type ConfigurationError struct {
	Field   string // request field that failed validation
	Message string // human-readable error message
}

// Error implements the error interface.
func (e ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// PathConflictError reports an existing filesystem entry that blocks the
// intended path, such as a regular file or a symlink where a directory is
// expected. External remediation is required; the conflicting entry is
// never touched.
type PathConflictError struct {
	Path    string // segment that conflicts
	Message string // what was found instead of a directory
}

// Error implements the error interface.
func (e PathConflictError) Error() string {
	return fmt.Sprintf("path conflict at %s: %s", e.Path, e.Message)
}

// PermissionError reports that the process lacks the rights to create or
// change ownership of a segment. Retrying without a privilege change cannot
// succeed, so it is fatal.
type PermissionError struct {
	Op   string // operation that failed: mkdir, chown, chmod, stat
	Path string
	Err  error
}

// Error implements the error interface.
func (e PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying OS error.
func (e PermissionError) Unwrap() error { return e.Err }

// VerificationError reports that the final state of the leaf directory does
// not match the request even though every mutation appeared to succeed.
// It is kept distinct from creation failures so operators can tell "the
// platform rejected the change" from "we could not make the change", e.g.
// a network filesystem that silently ignores chown.
type VerificationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e VerificationError) Error() string {
	return fmt.Sprintf("verification failed for %s: %s", e.Path, e.Message)
}

// Process exit codes, one per error class, so the orchestration layer can
// distinguish failure modes without parsing log output.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
	ExitPathConflict  = 3
	ExitPermission    = 4
	ExitVerification  = 5
)

// ExitCode maps an error returned by the pipeline to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		configErr   ConfigurationError
		conflictErr PathConflictError
		permErr     PermissionError
		verifyErr   VerificationError
	)

	switch {
	case errors.As(err, &configErr):
		return ExitConfiguration
	case errors.As(err, &conflictErr):
		return ExitPathConflict
	case errors.As(err, &permErr):
		return ExitPermission
	case errors.As(err, &verifyErr):
		return ExitVerification
	default:
		return ExitFailure
	}
}

// classifyOSError wraps a filesystem error from op on path, promoting
// EACCES/EPERM to PermissionError.
func classifyOSError(op, path string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return PermissionError{Op: op, Path: path, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}
