package hystrix

import (
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed lets calls pass through and measures their outcomes.
	StateClosed State = iota
	// StateOpen rejects all calls until the sleep window elapses.
	StateOpen
	// StateHalfOpen allows exactly one trial call to probe recovery.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// StateChangeFunc is notified of breaker transitions for a group.
type StateChangeFunc func(group string, from, to State)

// Breaker gates admission for one dependency group based on the failure
// ratio in its rolling window.
//
// Transitions:
//   - closed -> open: window volume >= RequestVolumeThreshold and error
//     percentage >= ErrorThresholdPercentage
//   - open -> half-open: SleepWindow elapsed; exactly one caller wins the
//     trial slot, concurrent callers stay short-circuited
//   - half-open -> closed: the trial call succeeds (window is reset)
//   - half-open -> open: the trial call fails, restarting the sleep window
type Breaker struct {
	group    string
	settings Settings
	window   *rollingWindow

	mu       sync.Mutex
	state    State
	openedAt time.Time

	now           func() time.Time
	onStateChange StateChangeFunc
}

// NewBreaker creates a breaker for a group. Settings must have defaults
// applied.
func NewBreaker(group string, settings Settings) *Breaker {
	return &Breaker{
		group:    group,
		settings: settings,
		window:   newRollingWindow(settings.WindowBuckets, settings.BucketDuration),
		state:    StateClosed,
		now:      time.Now,
	}
}

// SetStateChangeCallback registers a transition callback. It must be set
// before the breaker is shared between goroutines.
func (b *Breaker) SetStateChangeCallback(fn StateChangeFunc) {
	b.onStateChange = fn
}

// Allow reports whether a call may proceed. In the open state it performs
// the open -> half-open transition once the sleep window has elapsed; the
// check and the transition happen under one lock, so exactly one caller wins
// the trial slot.
func (b *Breaker) Allow() bool {
	if b.settings.DisableCircuitBreaker {
		return true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true
	case StateOpen:
		if b.now().Sub(b.openedAt) >= b.settings.SleepWindow {
			b.toState(StateHalfOpen)
			return true
		}
		return false
	case StateHalfOpen:
		// A trial is outstanding; everyone else waits it out.
		return false
	default:
		return false
	}
}

// RecordOutcome feeds one terminal outcome into the rolling window and
// drives the state machine. Short-circuited outcomes never reached the pool
// and do not count toward the window.
func (b *Breaker) RecordOutcome(kind OutcomeKind) {
	b.window.record(kind)

	if b.settings.DisableCircuitBreaker || kind == OutcomeShortCircuited {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if kind == OutcomeSuccess {
			return
		}
		snap := b.window.snapshot()
		if snap.Total() >= int64(b.settings.RequestVolumeThreshold) &&
			snap.ErrorPercentage() >= float64(b.settings.ErrorThresholdPercentage) {
			b.openedAt = b.now()
			b.toState(StateOpen)
		}
	case StateHalfOpen:
		// The first outcome recorded while half-open resolves the trial.
		if kind == OutcomeSuccess {
			b.toState(StateClosed)
			b.window.reset()
		} else {
			b.openedAt = b.now()
			b.toState(StateOpen)
		}
	case StateOpen:
		// Late completion of a call admitted before the breaker opened.
	}
}

// State returns the current breaker state. It does not perform the
// open -> half-open transition; only Allow admits the trial call.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Metrics returns the aggregate of the group's live rolling-window buckets.
func (b *Breaker) Metrics() Metrics {
	return b.window.snapshot()
}

// toState transitions to a new state. Caller holds the mutex.
func (b *Breaker) toState(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if b.onStateChange != nil {
		b.onStateChange(b.group, from, to)
	}
}
