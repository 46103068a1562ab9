// Package testutil provides helpers for testing concurrent execution:
// polling assertions and a gate for holding calls in flight.
package testutil

import (
	"testing"
	"time"
)

// Eventually polls cond until it returns true or the timeout elapses.
func Eventually(t *testing.T, timeout, interval time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(interval)
	}
	t.Fatalf("condition not met within %s: %s", timeout, msg)
}

// Gate holds calls in flight until released. A work function calls Pass;
// the test waits for arrivals with AwaitArrival and unblocks everyone with
// Open.
type Gate struct {
	arrived chan struct{}
	release chan struct{}
}

// NewGate creates a gate that can report up to capacity arrivals.
func NewGate(capacity int) *Gate {
	return &Gate{
		arrived: make(chan struct{}, capacity),
		release: make(chan struct{}),
	}
}

// Pass marks the caller as arrived and blocks until the gate opens.
func (g *Gate) Pass() {
	g.arrived <- struct{}{}
	<-g.release
}

// AwaitArrival waits for one caller to reach the gate.
func (g *Gate) AwaitArrival(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-g.arrived:
	case <-time.After(timeout):
		t.Fatal("no caller reached the gate in time")
	}
}

// Open releases every caller blocked at the gate, now and in the future.
func (g *Gate) Open() {
	close(g.release)
}
