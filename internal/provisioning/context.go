package provisioning

import "context"

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Resolved is populated by the resolve phase.
	Resolved *ResolvedPath

	// Result is populated by the create phase and refined by the verify
	// phase with the observed final owner and mode.
	Result *ProvisionResult
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Request  ProvisionRequest
	State    *State
	Observer Observer
}

// NewContext creates a new provisioning context with a console observer.
func NewContext(ctx context.Context, req ProvisionRequest) *Context {
	return &Context{
		Context:  ctx,
		Request:  req,
		State:    NewState(),
		Observer: NewConsoleObserver(),
	}
}

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// DefaultPhases returns the standard phase sequence: validation, resolve,
// create, verify.
func DefaultPhases() []Phase {
	return []Phase{
		NewValidationPhase(),
		NewResolvePhase(),
		NewCreatePhase(),
		NewVerifyPhase(),
	}
}
