package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/isaccanedo/introduction-to-hystrix/hystrix"
)

// Attribute keys for command metrics.
const (
	AttrGroup   = "hystrix.group"
	AttrOutcome = "hystrix.outcome"
	AttrFrom    = "hystrix.state.from"
	AttrTo      = "hystrix.state.to"
)

// CommandMetrics records protected-call executions and breaker transitions.
// It implements hystrix.Observer; its StateChange method plugs into
// hystrix.WithStateChangeCallback.
type CommandMetrics struct {
	executions   metric.Int64Counter
	latency      metric.Float64Histogram
	stateChanges metric.Int64Counter
}

// NewCommandMetrics creates command metrics on the given meter. A nil meter
// uses the globally registered provider.
func NewCommandMetrics(meter metric.Meter) (*CommandMetrics, error) {
	if meter == nil {
		meter = otel.Meter("github.com/isaccanedo/introduction-to-hystrix")
	}

	executions, err := meter.Int64Counter(
		"hystrix.executions",
		metric.WithDescription("Protected-call executions by group and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating executions counter: %w", err)
	}

	latency, err := meter.Float64Histogram(
		"hystrix.execution.duration",
		metric.WithDescription("Protected-call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating latency histogram: %w", err)
	}

	stateChanges, err := meter.Int64Counter(
		"hystrix.breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions by group"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}

	return &CommandMetrics{
		executions:   executions,
		latency:      latency,
		stateChanges: stateChanges,
	}, nil
}

// ObserveExecution records one execution outcome with its duration.
func (m *CommandMetrics) ObserveExecution(ctx context.Context, group string, kind hystrix.OutcomeKind, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrGroup, group),
		attribute.String(AttrOutcome, kind.String()),
	)
	m.executions.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(elapsed.Milliseconds()), attrs)
}

// StateChange records one breaker transition.
func (m *CommandMetrics) StateChange(group string, from, to hystrix.State) {
	m.stateChanges.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String(AttrGroup, group),
		attribute.String(AttrFrom, from.String()),
		attribute.String(AttrTo, to.String()),
	))
}
