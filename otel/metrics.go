package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/navreach/playbook/runtime"
)

// MetricsHandler translates status events into OpenTelemetry metrics:
// counters for node events, failures, and loop iterations, plus a run
// duration histogram.
type MetricsHandler struct {
	nodeEvents     metric.Int64Counter
	nodeFailures   metric.Int64Counter
	loopIterations metric.Int64Counter
	runDuration    metric.Float64Histogram
}

// NewMetricsHandler creates a MetricsHandler that uses the given meter to
// create its instruments.
func NewMetricsHandler(meter metric.Meter) (*MetricsHandler, error) {
	nodeEvents, err := meter.Int64Counter("navreach.node.events",
		metric.WithDescription("Number of node status events"),
	)
	if err != nil {
		return nil, err
	}

	nodeFailures, err := meter.Int64Counter("navreach.node.failures",
		metric.WithDescription("Number of node failures"),
	)
	if err != nil {
		return nil, err
	}

	loopIterations, err := meter.Int64Counter("navreach.loop.iterations",
		metric.WithDescription("Number of loop iterations started"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram("navreach.run.duration",
		metric.WithDescription("Duration of playbook runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsHandler{
		nodeEvents:     nodeEvents,
		nodeFailures:   nodeFailures,
		loopIterations: loopIterations,
		runDuration:    runDuration,
	}, nil
}

// HandleStatus records metrics for one status event.
func (h *MetricsHandler) HandleStatus(e runtime.StatusEvent, nodeType string) {
	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("node_type", nodeType),
		attribute.String("status", string(e.Status)),
	)
	h.nodeEvents.Add(ctx, 1, attrs)

	if e.Status == runtime.StatusError {
		h.nodeFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("node_type", nodeType),
		))
	}
	if e.Status == runtime.StatusRunning && nodeType == "loop" {
		h.loopIterations.Add(ctx, 1)
	}
}

// RunFinished records the duration of a completed run.
func (h *MetricsHandler) RunFinished(elapsed time.Duration, failed bool) {
	h.runDuration.Record(context.Background(), elapsed.Seconds(),
		metric.WithAttributes(attribute.Bool("failed", failed)),
	)
}
