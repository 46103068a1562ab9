package hystrix

import "time"

// Command wraps one unit of work with its isolation group and optional
// fallback. It is a value object: build it, pass it to Execute, and let it
// go — a Command is never shared between goroutines.
//
// Run may be abandoned mid-flight on timeout without cooperative
// cancellation, so it must be safe to keep running after its caller has
// given up.
type Command[T any] struct {
	// Group keys the pool, breaker, and rolling window this command runs
	// against.
	Group string
	// Run is the protected unit of work.
	Run func() (T, error)
	// Fallback, when set, is invoked on any non-success outcome. A fallback
	// failure is fatal to the call.
	Fallback func() (T, error)
	// Timeout overrides the group's execution timeout when positive.
	Timeout time.Duration
}

// NewCommand builds a command for a group with the given work function.
func NewCommand[T any](group string, run func() (T, error)) Command[T] {
	return Command[T]{Group: group, Run: run}
}

// WithFallback returns a copy of the command with the fallback set.
func (c Command[T]) WithFallback(fallback func() (T, error)) Command[T] {
	c.Fallback = fallback
	return c
}

// WithTimeout returns a copy of the command with a per-call timeout.
func (c Command[T]) WithTimeout(timeout time.Duration) Command[T] {
	c.Timeout = timeout
	return c
}
