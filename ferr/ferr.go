// Package ferr defines the engine's error-kind vocabulary (spec.md §7):
// tagged sentinel-style errors distinguished via errors.As/errors.Is,
// rather than ad-hoc string matching, the way Go libraries in this corpus
// layer domain errors over the standard errors package.
package ferr

import "fmt"

// PreconditionFailure is raised by pre(false) inside a predicate; always
// caught by the Explorer and counted as a discarded test, never surfaced
// to .check()'s caller.
type PreconditionFailure struct {
	Message string
}

func (e *PreconditionFailure) Error() string {
	if e.Message == "" {
		return "ferr: precondition failed"
	}
	return "ferr: precondition failed: " + e.Message
}

// NewPrecondition builds a PreconditionFailure with an optional message.
func NewPrecondition(msg string) *PreconditionFailure { return &PreconditionFailure{Message: msg} }

// PropertyViolation wraps a predicate's false result or non-precondition
// panic as a failing property, carrying the offending bindings.
type PropertyViolation struct {
	Bindings map[string]any
	Cause    error
}

func (e *PropertyViolation) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ferr: property violated: %v", e.Cause)
	}
	return "ferr: property violated"
}

func (e *PropertyViolation) Unwrap() error { return e.Cause }

// GenerationFailure reports that an arbitrary's pick returned none after
// maxTries; logged as a debug event, not fatal to the run.
type GenerationFailure struct {
	Arbitrary string
	Tries     int
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("ferr: generation failed for %q after %d tries", e.Arbitrary, e.Tries)
}

// BudgetExceeded is not an error condition in the usual sense: it signals
// that a sampling loop or shrink round hit its configured cap. Callers
// treat it as "return the best result so far," never propagate it.
type BudgetExceeded struct {
	Budget string // e.g. "maxAttempts", "maxRounds", "maxTries"
	Limit  int
}

func (e *BudgetExceeded) Error() string {
	return fmt.Sprintf("ferr: budget %s exceeded (limit %d)", e.Budget, e.Limit)
}

// Timeout signals a wall-clock deadline was exceeded; handled identically
// to BudgetExceeded.
type Timeout struct {
	DeadlineMs int64
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("ferr: timeout after %dms", e.DeadlineMs)
}

// InvariantFailure (stateful runner only) is surfaced on the result with
// the step index and command name where an invariant failed.
type InvariantFailure struct {
	Step    int
	Command string
	Cause   error
}

func (e *InvariantFailure) Error() string {
	return fmt.Sprintf("ferr: invariant failed at step %d (command %q): %v", e.Step, e.Command, e.Cause)
}

func (e *InvariantFailure) Unwrap() error { return e.Cause }

// UserCallbackError wraps a panic/error from a user-supplied callback
// (e.g. onProgress); the caller logs it at Warn and continues the run.
type UserCallbackError struct {
	Callback string
	Cause    error
}

func (e *UserCallbackError) Error() string {
	return fmt.Sprintf("ferr: %s callback failed: %v", e.Callback, e.Cause)
}

func (e *UserCallbackError) Unwrap() error { return e.Cause }

// MisuseError is the only error kind the public API ever propagates to the
// caller directly: calling event/target outside a property callback, or
// checking a scenario with no assertion leaf.
type MisuseError struct {
	Message string
}

func (e *MisuseError) Error() string { return "ferr: misuse: " + e.Message }

// NewMisuse builds a MisuseError with msg.
func NewMisuse(msg string) *MisuseError { return &MisuseError{Message: msg} }
