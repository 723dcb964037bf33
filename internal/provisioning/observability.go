package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal logging interface the pipeline depends on.
type Logger interface {
	// Printf logs a formatted message
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during
// provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "resolve", "create")
	Message   string            // Human-readable message
	Path      string            // Filesystem path the event refers to, if any
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventSegmentCreating indicates a path segment is being created.
	EventSegmentCreating EventType = "segment.creating"
	// EventSegmentCreated indicates a path segment was created successfully.
	EventSegmentCreated EventType = "segment.created"
	// EventSegmentExists indicates a path segment already exists.
	EventSegmentExists EventType = "segment.exists"
	// EventSegmentConflict indicates a non-directory entry blocks the path.
	EventSegmentConflict EventType = "segment.conflict"

	// EventOwnershipApplied indicates owner and mode were applied to a segment.
	EventOwnershipApplied EventType = "ownership.applied"

	// EventVerifyPassed indicates the final-state check succeeded.
	EventVerifyPassed EventType = "verify.passed"
	// EventVerifyFailed indicates the final state does not match the request.
	EventVerifyFailed EventType = "verify.failed"

	// EventValidationWarning indicates a validation warning.
	EventValidationWarning EventType = "validation.warning"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
	quiet         bool
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Quiet returns a copy of the observer that suppresses per-segment progress
// and pre-creation chatter, keeping phase results and warnings.
func (o *ConsoleObserver) Quiet() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: o.contextFields,
		quiet:         true,
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if o.quiet && event.Type == EventSegmentCreating {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(o.formatEvent(event))
}

// Progress implements the Observer interface.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	if o.quiet {
		return
	}
	if total == 0 {
		log.Printf("[%s] Progress: %d/%d", phase, current, total)
		return
	}
	percentage := (current * 100) / total
	log.Printf("[%s] Progress: %d/%d (%d%%)", phase, current, total, percentage)
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string)
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		contextFields: newFields,
		quiet:         o.quiet,
	}
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}

	if event.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", event.Path))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// NopObserver discards everything. Useful for read-only callers such as
// the verify subcommand, where diagnostics are rendered separately.
type NopObserver struct{}

// Printf implements the Logger interface.
func (NopObserver) Printf(string, ...interface{}) {}

// Event implements the Observer interface.
func (NopObserver) Event(Event) {}

// Progress implements the Observer interface.
func (NopObserver) Progress(string, int, int) {}

// WithFields implements the Observer interface.
func (n NopObserver) WithFields(map[string]string) Observer { return n }

// LogSegmentCreated logs a successful segment creation event.
func LogSegmentCreated(observer Observer, phase, path string) {
	observer.Event(Event{
		Type:    EventSegmentCreated,
		Phase:   phase,
		Path:    path,
		Message: "directory created",
	})
}

// LogSegmentExists logs that a segment already exists and was left in place.
func LogSegmentExists(observer Observer, phase, path string) {
	observer.Event(Event{
		Type:    EventSegmentExists,
		Phase:   phase,
		Path:    path,
		Message: "directory already exists",
	})
}

// LogOwnershipApplied logs an ownership/mode application event.
func LogOwnershipApplied(observer Observer, phase, path string, uid, gid int, mode string) {
	observer.Event(Event{
		Type:    EventOwnershipApplied,
		Phase:   phase,
		Path:    path,
		Message: "ownership applied",
		Fields: map[string]string{
			"uid":  fmt.Sprintf("%d", uid),
			"gid":  fmt.Sprintf("%d", gid),
			"mode": mode,
		},
	})
}
