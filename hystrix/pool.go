package hystrix

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// ExecutionPool bounds concurrent in-flight work for one dependency group.
// Worker slots are a channel semaphore of CoreSize capacity; a bounded queue
// counter in front of it admits waiters up to the effective queue limit.
// Each group owns its pool, so saturating one group never starves another.
type ExecutionPool struct {
	group      string
	sem        chan struct{}
	queueLimit int
	queued     atomic.Int32
}

// NewExecutionPool creates a pool for a group. Settings must have defaults
// applied.
func NewExecutionPool(group string, settings Settings) *ExecutionPool {
	return &ExecutionPool{
		group:      group,
		sem:        make(chan struct{}, settings.CoreSize),
		queueLimit: settings.queueLimit(),
	}
}

// Submit runs fn on a worker slot and blocks until it completes, the timeout
// elapses, or the call is rejected on entry. The timeout covers queue wait
// plus execution. Context cancellation while waiting is reported as a
// timeout outcome.
//
// Cancellation is non-cooperative: on timeout the work keeps running, its
// eventual result is discarded, and the worker slot is released only when
// the work genuinely finishes. A panic inside fn is captured as a failure
// outcome, never propagated.
func (p *ExecutionPool) Submit(ctx context.Context, timeout time.Duration, fn func() error) (OutcomeKind, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case p.sem <- struct{}{}:
	default:
		// All workers busy; try the queue.
		if p.queueLimit <= 0 || int(p.queued.Add(1)) > p.queueLimit {
			if p.queueLimit > 0 {
				p.queued.Add(-1)
			}
			return OutcomeRejected, nil
		}
		select {
		case p.sem <- struct{}{}:
			p.queued.Add(-1)
		case <-timer.C:
			p.queued.Add(-1)
			return OutcomeTimeout, nil
		case <-ctx.Done():
			p.queued.Add(-1)
			return OutcomeTimeout, ctx.Err()
		}
	}

	done := make(chan error, 1)
	go func() {
		defer func() { <-p.sem }()
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("command panicked: %v", r)
			}
		}()
		done <- fn()
	}()

	select {
	case err := <-done:
		if err != nil {
			return OutcomeFailure, err
		}
		return OutcomeSuccess, nil
	case <-timer.C:
		return OutcomeTimeout, nil
	case <-ctx.Done():
		return OutcomeTimeout, ctx.Err()
	}
}

// InFlight returns the number of worker slots currently in use.
func (p *ExecutionPool) InFlight() int {
	return len(p.sem)
}

// Queued returns the number of callers waiting for a worker slot.
func (p *ExecutionPool) Queued() int {
	return int(p.queued.Load())
}

// CoreSize returns the number of worker slots in the pool.
func (p *ExecutionPool) CoreSize() int {
	return cap(p.sem)
}
