package observability

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/isaccanedo/introduction-to-hystrix/hystrix"
)

func TestNewCommandMetrics_NilMeterUsesGlobal(t *testing.T) {
	m, err := NewCommandMetrics(nil)
	if err != nil {
		t.Fatalf("NewCommandMetrics failed: %v", err)
	}

	// Recording against the default provider must not panic.
	m.ObserveExecution(context.Background(), "api", hystrix.OutcomeSuccess, 12*time.Millisecond)
	m.StateChange("api", hystrix.StateClosed, hystrix.StateOpen)
}

func TestCommandMetrics_RecordsAllOutcomeKinds(t *testing.T) {
	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewCommandMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewCommandMetrics failed: %v", err)
	}

	kinds := []hystrix.OutcomeKind{
		hystrix.OutcomeSuccess,
		hystrix.OutcomeFailure,
		hystrix.OutcomeTimeout,
		hystrix.OutcomeRejected,
		hystrix.OutcomeShortCircuited,
	}
	for _, kind := range kinds {
		m.ObserveExecution(context.Background(), "api", kind, time.Millisecond)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("resilience-core")

	if cfg.ServiceName != "resilience-core" {
		t.Errorf("ServiceName = %s", cfg.ServiceName)
	}
	if cfg.Endpoint == "" {
		t.Error("expected a default endpoint")
	}
	if cfg.Interval <= 0 {
		t.Error("expected a positive export interval")
	}
}
