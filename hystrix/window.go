package hystrix

import (
	"sync"
	"time"
)

// Metrics is an aggregate view over the live buckets of a group's rolling
// window. ErrorPercentage counts failures, timeouts, and rejections against
// the total.
type Metrics struct {
	Successes  int64
	Failures   int64
	Timeouts   int64
	Rejections int64
}

// Total returns the number of executions in the window.
func (m Metrics) Total() int64 {
	return m.Successes + m.Failures + m.Timeouts + m.Rejections
}

// ErrorPercentage returns the share of non-success outcomes, 0-100.
func (m Metrics) ErrorPercentage() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	return float64(m.Failures+m.Timeouts+m.Rejections) / float64(total) * 100
}

// windowBucket holds outcome counts for one time slice. start is the
// bucket-aligned wall-clock time in nanoseconds; a bucket whose start no
// longer matches its slot is stale and is zeroed before reuse.
type windowBucket struct {
	start      int64
	successes  int64
	failures   int64
	timeouts   int64
	rejections int64
}

// rollingWindow is a circular buffer of time buckets. Writers are command
// completions, readers are breaker admission checks; both go through the
// mutex. The clock is injectable for deterministic tests.
type rollingWindow struct {
	mu        sync.Mutex
	buckets   []windowBucket
	bucketDur time.Duration
	now       func() time.Time
}

func newRollingWindow(buckets int, bucketDur time.Duration) *rollingWindow {
	return &rollingWindow{
		buckets:   make([]windowBucket, buckets),
		bucketDur: bucketDur,
		now:       time.Now,
	}
}

// record counts one outcome in the current bucket. Short-circuited calls are
// not recorded: they never reached the pool, and counting them would let an
// open breaker feed its own statistics.
func (w *rollingWindow) record(kind OutcomeKind) {
	if kind == OutcomeShortCircuited {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	b := w.currentBucket()
	switch kind {
	case OutcomeSuccess:
		b.successes++
	case OutcomeFailure:
		b.failures++
	case OutcomeTimeout:
		b.timeouts++
	case OutcomeRejected:
		b.rejections++
	}
}

// snapshot aggregates all live buckets.
func (w *rollingWindow) snapshot() Metrics {
	w.mu.Lock()
	defer w.mu.Unlock()

	aligned := w.alignedNow()
	oldest := aligned - int64(len(w.buckets)-1)*int64(w.bucketDur)

	var m Metrics
	for i := range w.buckets {
		b := &w.buckets[i]
		if b.start < oldest || b.start > aligned || b.start == 0 {
			continue
		}
		m.Successes += b.successes
		m.Failures += b.failures
		m.Timeouts += b.timeouts
		m.Rejections += b.rejections
	}
	return m
}

// reset zeroes the whole window. Called when the breaker re-closes so stale
// failures cannot immediately re-trip it.
func (w *rollingWindow) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.buckets {
		w.buckets[i] = windowBucket{}
	}
}

// currentBucket returns the bucket for the current time slice, recycling the
// slot if its previous occupant has aged out. Caller holds the mutex.
func (w *rollingWindow) currentBucket() *windowBucket {
	aligned := w.alignedNow()
	idx := (aligned / int64(w.bucketDur)) % int64(len(w.buckets))
	b := &w.buckets[idx]
	if b.start != aligned {
		*b = windowBucket{start: aligned}
	}
	return b
}

func (w *rollingWindow) alignedNow() int64 {
	n := w.now().UnixNano()
	return n - n%int64(w.bucketDur)
}
