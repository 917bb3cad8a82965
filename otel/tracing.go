// Package otel provides OpenTelemetry integration for playbook runs:
// spans and metrics derived from the automation runtime's status events.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/navreach/playbook/runtime"
)

// TracingHandler translates status events into OpenTelemetry spans: one
// root span per run, one child span per node execution. A loop node
// re-entering closes the previous iteration's span before opening the
// next, so each iteration traces separately.
type TracingHandler struct {
	tracer trace.Tracer

	mu        sync.Mutex
	runSpan   trace.Span
	runCtx    context.Context
	nodeSpans map[string]trace.Span // nodeID -> active span
}

// NewTracingHandler creates a TracingHandler that uses the given tracer
// to create spans from status events.
func NewTracingHandler(tracer trace.Tracer) *TracingHandler {
	return &TracingHandler{
		tracer:    tracer,
		nodeSpans: make(map[string]trace.Span),
	}
}

// RunStarted opens the root span for a run.
func (h *TracingHandler) RunStarted(playbookName string) {
	ctx, span := h.tracer.Start(context.Background(), "run:"+playbookName,
		trace.WithAttributes(
			attribute.String("navreach.playbook", playbookName),
		),
	)

	h.mu.Lock()
	h.runSpan = span
	h.runCtx = ctx
	h.mu.Unlock()
}

// HandleStatus opens or closes a node span for one status event.
func (h *TracingHandler) HandleStatus(e runtime.StatusEvent, nodeType string) {
	switch e.Status {
	case runtime.StatusRunning:
		h.startNodeSpan(e, nodeType)
	case runtime.StatusSuccess:
		h.endNodeSpan(e, codes.Ok)
	case runtime.StatusError:
		h.endNodeSpan(e, codes.Error)
	}
}

// startNodeSpan opens a child span under the run span, ending any span
// left open by a previous iteration of the same node.
func (h *TracingHandler) startNodeSpan(e runtime.StatusEvent, nodeType string) {
	h.mu.Lock()
	parentCtx := h.runCtx
	if prev, ok := h.nodeSpans[e.NodeID]; ok {
		delete(h.nodeSpans, e.NodeID)
		prev.End()
	}
	h.mu.Unlock()

	if parentCtx == nil {
		parentCtx = context.Background()
	}

	_, span := h.tracer.Start(parentCtx, "node:"+e.NodeID,
		trace.WithAttributes(
			attribute.String("navreach.node_id", e.NodeID),
			attribute.String("navreach.node_type", nodeType),
		),
	)

	h.mu.Lock()
	h.nodeSpans[e.NodeID] = span
	h.mu.Unlock()
}

// endNodeSpan closes the node's active span with the given status code.
func (h *TracingHandler) endNodeSpan(e runtime.StatusEvent, code codes.Code) {
	h.mu.Lock()
	span, ok := h.nodeSpans[e.NodeID]
	if ok {
		delete(h.nodeSpans, e.NodeID)
	}
	h.mu.Unlock()

	if !ok {
		return
	}

	if code == codes.Error {
		msg := e.Message
		if msg == "" {
			msg = "node failed"
		}
		span.SetStatus(codes.Error, msg)
		span.RecordError(spanError(msg))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// RunFinished closes any node spans still open and then the root span.
func (h *TracingHandler) RunFinished(failed bool) {
	h.mu.Lock()
	spans := h.nodeSpans
	h.nodeSpans = make(map[string]trace.Span)
	runSpan := h.runSpan
	h.runSpan = nil
	h.runCtx = nil
	h.mu.Unlock()

	for _, span := range spans {
		span.End()
	}
	if runSpan == nil {
		return
	}
	if failed {
		runSpan.SetStatus(codes.Error, "run failed")
	} else {
		runSpan.SetStatus(codes.Ok, "")
	}
	runSpan.End()
}

// ActiveSpanContext returns the SpanContext for a node's active span.
// Returns an empty SpanContext if none is open.
func (h *TracingHandler) ActiveSpanContext(nodeID string) trace.SpanContext {
	h.mu.Lock()
	span, ok := h.nodeSpans[nodeID]
	h.mu.Unlock()

	if !ok {
		return trace.SpanContext{}
	}
	return span.SpanContext()
}

// spanError is a simple error type for recording span errors.
type spanError string

func (e spanError) Error() string { return string(e) }
