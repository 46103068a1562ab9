package hystrix

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/isaccanedo/introduction-to-hystrix/logger"
)

func TestRegistry_ConfigureAppliesDefaults(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Configure("api", Settings{CoreSize: 2}); err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	s, ok := reg.Settings("api")
	if !ok {
		t.Fatal("configured group not found")
	}
	if s.CoreSize != 2 {
		t.Errorf("expected core size 2, got %d", s.CoreSize)
	}
	if s.ExecutionTimeout != DefaultExecutionTimeout {
		t.Errorf("expected default timeout, got %s", s.ExecutionTimeout)
	}
	if s.RequestVolumeThreshold != DefaultRequestVolumeThreshold {
		t.Errorf("expected default volume threshold, got %d", s.RequestVolumeThreshold)
	}
}

func TestRegistry_ConfigureRejectsInvalidSettings(t *testing.T) {
	reg := NewRegistry()

	err := reg.Configure("api", Settings{MaxQueueSize: 2, QueueRejectionThreshold: 5})
	if err == nil {
		t.Error("expected validation error for rejection threshold above queue size")
	}

	if err := reg.Configure("", Settings{}); err == nil {
		t.Error("expected error for empty group name")
	}
}

func TestRegistry_ConfigureAfterUseFails(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg, WithLogger(logger.Nop()))

	_, _ = Execute(context.Background(), d, NewCommand("live", func() (int, error) {
		return 1, nil
	}))

	if err := reg.Configure("live", Settings{CoreSize: 1}); err == nil {
		t.Error("expected error when configuring a live group")
	}
}

func TestRegistry_UnknownGroupDefaults(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Settings("nobody"); ok {
		t.Error("unknown group reported as configured")
	}
	if state := reg.State("nobody"); state != StateClosed {
		t.Errorf("expected closed state for unknown group, got %s", state)
	}
	if m := reg.Metrics("nobody"); m.Total() != 0 {
		t.Errorf("expected empty metrics for unknown group, got %+v", m)
	}
}

func TestRegistry_GroupsMaterializeOnce(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	groups := make([]*group, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			groups[n] = reg.forGroup("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(groups); i++ {
		if groups[i] != groups[0] {
			t.Fatal("concurrent lookups returned different group instances")
		}
	}
}

func TestRegistry_MetricsReflectExecutions(t *testing.T) {
	reg := NewRegistry()
	d := NewDispatcher(reg, WithLogger(logger.Nop()))

	for i := 0; i < 3; i++ {
		_, _ = Execute(context.Background(), d, NewCommand("metered", func() (int, error) {
			return 1, nil
		}))
	}

	m := reg.Metrics("metered")
	if m.Successes != 3 {
		t.Errorf("expected 3 successes, got %+v", m)
	}
}

func TestRegistry_StateChangeCallback(t *testing.T) {
	var mu sync.Mutex
	var seen []State
	reg := NewRegistry(WithStateChangeCallback(func(group string, from, to State) {
		mu.Lock()
		seen = append(seen, to)
		mu.Unlock()
	}))
	if err := reg.Configure("cb", Settings{
		RequestVolumeThreshold:   1,
		ErrorThresholdPercentage: 50,
		SleepWindow:              time.Hour,
	}); err != nil {
		t.Fatalf("configure failed: %v", err)
	}
	d := NewDispatcher(reg, WithLogger(logger.Nop()))

	_ = d.Do(context.Background(), "cb", func() error {
		return context.DeadlineExceeded
	})

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 1 || seen[0] != StateOpen {
		t.Errorf("expected one transition to open, got %v", seen)
	}
}
