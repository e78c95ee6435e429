package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// RunMetrics holds the counters emitted once per engine run. Every
// instrument is created against the global meter provider, so when Init was
// never called (no OTLP endpoint configured) these are the SDK's built-in
// no-op instruments and recording them costs nothing.
type RunMetrics struct {
	contradictions metric.Int64Counter
	anomalies      metric.Int64Counter
	entities       metric.Int64Counter
	tracer         trace.Tracer
}

// NewRunMetrics builds the run-scoped instrument set under the
// "veridex/engine" instrumentation scope.
func NewRunMetrics() (*RunMetrics, error) {
	meter := Meter("veridex/engine")

	contradictions, err := meter.Int64Counter("veridex.contradictions.found",
		metric.WithDescription("contradictions emitted by a completed engine run"))
	if err != nil {
		return nil, err
	}
	anomalies, err := meter.Int64Counter("veridex.anomalies.found",
		metric.WithDescription("behavioral anomalies emitted by a completed engine run"))
	if err != nil {
		return nil, err
	}
	entities, err := meter.Int64Counter("veridex.entities.profiled",
		metric.WithDescription("entities retained after profiling and merge"))
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		contradictions: contradictions,
		anomalies:      anomalies,
		entities:       entities,
		tracer:         otel.Tracer("veridex/engine"),
	}, nil
}

// StartRun opens a span covering one full Engine.Run call.
func (m *RunMetrics) StartRun(ctx context.Context, caseID string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "engine.Run", trace.WithAttributes(
		attribute.String("case_id", caseID),
	))
}

// StartPass opens a span covering one contradiction-engine pass.
func (m *RunMetrics) StartPass(ctx context.Context, pass int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "contradiction.pass", trace.WithAttributes(
		attribute.Int("pass", pass),
	))
}

// RecordRun increments the run-level counters by the given totals.
func (m *RunMetrics) RecordRun(ctx context.Context, contradictions, anomalies, entities int) {
	m.contradictions.Add(ctx, int64(contradictions))
	m.anomalies.Add(ctx, int64(anomalies))
	m.entities.Add(ctx, int64(entities))
}
