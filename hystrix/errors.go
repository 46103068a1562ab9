package hystrix

import (
	"errors"
	"fmt"
)

// Sentinel errors for outcome discrimination with errors.Is.
var (
	// ErrCircuitOpen is matched when the circuit breaker refused the call.
	ErrCircuitOpen = errors.New("circuit breaker is open")
	// ErrTimeout is matched when the execution deadline elapsed.
	ErrTimeout = errors.New("execution timed out")
	// ErrPoolFull is matched when the group's pool rejected the call on entry.
	ErrPoolFull = errors.New("execution pool is full")
	// ErrNoWork is returned for commands without a work function.
	ErrNoWork = errors.New("command has no work function")
)

// CommandError is the typed error surfaced for every non-success outcome
// when no fallback is configured. Callers can discriminate the outcome kind
// either directly or through errors.Is against the sentinel errors above.
type CommandError struct {
	// Group is the dependency group the command ran against.
	Group string
	// Kind is the terminal outcome of the execution.
	Kind OutcomeKind
	// Cause is the error returned by the work function, if any.
	Cause error
}

// Error returns the string representation of the error.
func (e *CommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("hystrix: group %q: %s: %v", e.Group, e.Kind, e.Cause)
	}
	return fmt.Sprintf("hystrix: group %q: %s", e.Group, e.Kind)
}

// Unwrap returns the work function's error, if any.
func (e *CommandError) Unwrap() error { return e.Cause }

// Is maps the outcome kind onto the package sentinels so that
// errors.Is(err, ErrCircuitOpen) and friends work on wrapped errors.
func (e *CommandError) Is(target error) bool {
	switch target {
	case ErrCircuitOpen:
		return e.Kind == OutcomeShortCircuited
	case ErrTimeout:
		return e.Kind == OutcomeTimeout
	case ErrPoolFull:
		return e.Kind == OutcomeRejected
	default:
		return false
	}
}

// FallbackError is surfaced when a command did not succeed and its fallback
// also failed. It carries both the original outcome and the fallback fault.
type FallbackError struct {
	// Original is the error describing the failed primary execution.
	Original *CommandError
	// Cause is the error returned by the fallback function.
	Cause error
}

// Error returns the string representation of the error.
func (e *FallbackError) Error() string {
	return fmt.Sprintf("%v (fallback failed: %v)", e.Original, e.Cause)
}

// Unwrap exposes both the original command error and the fallback fault
// to errors.Is / errors.As traversal.
func (e *FallbackError) Unwrap() []error {
	return []error{e.Original, e.Cause}
}
