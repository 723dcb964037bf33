package provisioning

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ValidationError represents a request validation error or warning.
type ValidationError struct {
	Field    string // request field that failed validation
	Message  string // human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidateRequest runs all request checks and returns any errors or
// warnings. It never touches the filesystem; existence checks belong to
// the resolve phase.
func ValidateRequest(req ProvisionRequest) []ValidationError {
	var errs []ValidationError

	if req.BaseHomeDir == "" {
		errs = append(errs, ValidationError{
			Field:    "BaseHomeDir",
			Message:  "base home directory is required",
			Severity: "error",
		})
	} else if !filepath.IsAbs(req.BaseHomeDir) {
		errs = append(errs, ValidationError{
			Field:    "BaseHomeDir",
			Message:  fmt.Sprintf("must be an absolute path, got %q", req.BaseHomeDir),
			Severity: "error",
		})
	}

	errs = append(errs, validateSubdirectory(req.Subdirectory)...)

	for field, id := range map[string]int{"OwnerUID": req.OwnerUID, "OwnerGID": req.OwnerGID} {
		if id < 0 {
			errs = append(errs, ValidationError{
				Field:    field,
				Message:  fmt.Sprintf("must be nonnegative, got %d", id),
				Severity: "error",
			})
		} else if id > MaxOwnerID {
			errs = append(errs, ValidationError{
				Field:    field,
				Message:  fmt.Sprintf("out of range (%d > %d)", id, MaxOwnerID),
				Severity: "error",
			})
		}
	}

	if req.DirMode&^fs.ModePerm != 0 {
		errs = append(errs, ValidationError{
			Field:    "DirMode",
			Message:  fmt.Sprintf("must contain permission bits only, got %O", req.DirMode),
			Severity: "error",
		})
	} else if req.DirMode&0o700 != 0o700 {
		errs = append(errs, ValidationError{
			Field:    "DirMode",
			Message:  fmt.Sprintf("mode %O denies the owner full access to their own home", req.DirMode),
			Severity: "warning",
		})
	}

	return errs
}

// validateSubdirectory rejects absolute and traversal-carrying subdirectory
// values. The subdirectory is derived from external identity input, so it
// is treated as untrusted.
func validateSubdirectory(subdir string) []ValidationError {
	if subdir == "" {
		return nil
	}

	var errs []ValidationError

	if filepath.IsAbs(subdir) {
		errs = append(errs, ValidationError{
			Field:    "Subdirectory",
			Message:  fmt.Sprintf("must be relative, got %q", subdir),
			Severity: "error",
		})
	}

	for _, part := range strings.Split(filepath.ToSlash(subdir), "/") {
		if part == ".." {
			errs = append(errs, ValidationError{
				Field:    "Subdirectory",
				Message:  fmt.Sprintf("%q contains a parent-directory traversal component", subdir),
				Severity: "error",
			})
			break
		}
	}

	return errs
}

// ValidationPhase implements the Phase interface for pre-flight validation.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	all := ValidateRequest(ctx.Request)

	var errMsgs []string
	for _, ve := range all {
		if ve.IsError() {
			errMsgs = append(errMsgs, ve.Error())
			continue
		}
		ctx.Observer.Event(Event{
			Type:    EventValidationWarning,
			Phase:   vp.Name(),
			Message: ve.Message,
		})
	}

	if len(errMsgs) > 0 {
		return ConfigurationError{Message: strings.Join(errMsgs, "; ")}
	}

	return nil
}
