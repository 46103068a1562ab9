package hystrix

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/isaccanedo/introduction-to-hystrix/logger"
)

// Observer receives one notification per command execution, regardless of
// outcome. Implementations must be safe for concurrent use.
type Observer interface {
	ObserveExecution(ctx context.Context, group string, kind OutcomeKind, elapsed time.Duration)
}

// Dispatcher orchestrates protected calls: it consults the group's breaker,
// submits to the group's pool, records the outcome exactly once, and applies
// the fallback policy.
type Dispatcher struct {
	registry *Registry
	log      *logger.Logger
	observer Observer
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger used for outcome logging.
func WithLogger(l *logger.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = l }
}

// WithObserver sets an execution observer, e.g. for metrics.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) { d.observer = o }
}

// NewDispatcher creates a dispatcher over a group registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		log:      logger.GetGlobalLogger().WithComponent("hystrix"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the dispatcher's group registry.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Execute runs a command through its group's breaker and pool and returns
// the work's value, the fallback's value, or a typed error. It blocks until
// the outcome is known.
func Execute[T any](ctx context.Context, d *Dispatcher, cmd Command[T]) (T, error) {
	var zero T
	if cmd.Run == nil {
		return zero, ErrNoWork
	}

	g := d.registry.forGroup(cmd.Group)
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = g.settings.ExecutionTimeout
	}

	execID := uuid.NewString()
	start := time.Now()

	var result T
	var kind OutcomeKind
	var cause error

	if !g.breaker.Allow() {
		kind = OutcomeShortCircuited
	} else {
		kind, cause = g.pool.Submit(ctx, timeout, func() error {
			v, err := cmd.Run()
			if err != nil {
				return err
			}
			result = v
			return nil
		})
	}

	// Exactly one record per command, on every path.
	g.breaker.RecordOutcome(kind)

	elapsed := time.Since(start)
	if d.observer != nil {
		d.observer.ObserveExecution(ctx, cmd.Group, kind, elapsed)
	}

	if kind == OutcomeSuccess {
		d.log.Debug("command succeeded", logger.Fields(
			"group", cmd.Group,
			"execution_id", execID,
			"duration_ms", elapsed.Milliseconds(),
		))
		return result, nil
	}

	cmdErr := &CommandError{Group: cmd.Group, Kind: kind, Cause: cause}
	d.log.Warn("command did not succeed", logger.Fields(
		"group", cmd.Group,
		"execution_id", execID,
		"outcome", kind.String(),
		"duration_ms", elapsed.Milliseconds(),
		"has_fallback", cmd.Fallback != nil,
	))

	if cmd.Fallback == nil {
		return zero, cmdErr
	}
	v, err := cmd.Fallback()
	if err != nil {
		return zero, &FallbackError{Original: cmdErr, Cause: err}
	}
	return v, nil
}

// Do runs a valueless work function through the dispatcher. It is the
// non-generic convenience over Execute.
func (d *Dispatcher) Do(ctx context.Context, group string, run func() error) error {
	_, err := Execute(ctx, d, Command[struct{}]{
		Group: group,
		Run: func() (struct{}, error) {
			return struct{}{}, run()
		},
	})
	return err
}

// DoWithFallback is Do with a fallback applied on any non-success outcome.
func (d *Dispatcher) DoWithFallback(ctx context.Context, group string, run, fallback func() error) error {
	_, err := Execute(ctx, d, Command[struct{}]{
		Group: group,
		Run: func() (struct{}, error) {
			return struct{}{}, run()
		},
		Fallback: func() (struct{}, error) {
			return struct{}{}, fallback()
		},
	})
	return err
}
