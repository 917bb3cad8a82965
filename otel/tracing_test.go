package otel_test

import (
	"testing"

	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	navotel "github.com/navreach/playbook/otel"
	"github.com/navreach/playbook/runtime"
)

// newTestTracer returns a tracer backed by an in-memory span exporter.
func newTestTracer() (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	return exporter, tp
}

func TestTracingHandler_RunSpan(t *testing.T) {
	exporter, tp := newTestTracer()
	h := navotel.NewTracingHandler(tp.Tracer("test"))

	h.RunStarted("Outreach")
	h.RunFinished(false)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	runSpan := spans[0]
	if runSpan.Name != "run:Outreach" {
		t.Errorf("span name = %q, want %q", runSpan.Name, "run:Outreach")
	}
	if runSpan.Status.Code != otelcodes.Ok {
		t.Errorf("span status = %v, want Ok", runSpan.Status.Code)
	}

	found := false
	for _, attr := range runSpan.Attributes {
		if string(attr.Key) == "navreach.playbook" && attr.Value.AsString() == "Outreach" {
			found = true
		}
	}
	if !found {
		t.Error("expected navreach.playbook attribute on run span")
	}
}

func TestTracingHandler_NodeSpanUnderRun(t *testing.T) {
	exporter, tp := newTestTracer()
	h := navotel.NewTracingHandler(tp.Tracer("test"))

	h.RunStarted("Outreach")
	h.HandleStatus(runtime.StatusEvent{NodeID: "n1", Status: runtime.StatusRunning}, "navigate")

	sc := h.ActiveSpanContext("n1")
	if !sc.IsValid() {
		t.Fatal("expected valid span context for running node")
	}

	h.HandleStatus(runtime.StatusEvent{NodeID: "n1", Status: runtime.StatusSuccess}, "navigate")
	h.RunFinished(false)

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	nodeSpan := spans[0]
	runSpan := spans[1]
	if nodeSpan.Name != "node:n1" {
		t.Errorf("node span name = %q, want %q", nodeSpan.Name, "node:n1")
	}
	if nodeSpan.Parent.SpanID() != runSpan.SpanContext.SpanID() {
		t.Error("node span is not a child of the run span")
	}
	if nodeSpan.Status.Code != otelcodes.Ok {
		t.Errorf("node span status = %v, want Ok", nodeSpan.Status.Code)
	}
}

func TestTracingHandler_ErrorStatus(t *testing.T) {
	exporter, tp := newTestTracer()
	h := navotel.NewTracingHandler(tp.Tracer("test"))

	h.RunStarted("Outreach")
	h.HandleStatus(runtime.StatusEvent{NodeID: "n1", Status: runtime.StatusRunning}, "click")
	h.HandleStatus(runtime.StatusEvent{NodeID: "n1", Status: runtime.StatusError, Message: "element not found"}, "click")
	h.RunFinished(true)

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	nodeSpan := spans[0]
	if nodeSpan.Status.Code != otelcodes.Error {
		t.Errorf("node span status = %v, want Error", nodeSpan.Status.Code)
	}
	if nodeSpan.Status.Description != "element not found" {
		t.Errorf("node span status description = %q, want %q", nodeSpan.Status.Description, "element not found")
	}
	if len(nodeSpan.Events) == 0 {
		t.Error("expected recorded error event on node span")
	}

	runSpan := spans[1]
	if runSpan.Status.Code != otelcodes.Error {
		t.Errorf("run span status = %v, want Error", runSpan.Status.Code)
	}
}

func TestTracingHandler_LoopIterationsSeparateSpans(t *testing.T) {
	exporter, tp := newTestTracer()
	h := navotel.NewTracingHandler(tp.Tracer("test"))

	h.RunStarted("Outreach")
	// Two running events without a close in between: a loop re-entering.
	h.HandleStatus(runtime.StatusEvent{NodeID: "loop-1", Status: runtime.StatusRunning}, "loop")
	h.HandleStatus(runtime.StatusEvent{NodeID: "loop-1", Status: runtime.StatusRunning}, "loop")
	h.HandleStatus(runtime.StatusEvent{NodeID: "loop-1", Status: runtime.StatusSuccess}, "loop")
	h.RunFinished(false)

	spans := exporter.GetSpans()
	// Two iteration spans plus the run span.
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	for _, s := range spans[:2] {
		if s.Name != "node:loop-1" {
			t.Errorf("span name = %q, want %q", s.Name, "node:loop-1")
		}
	}
}

func TestTracingHandler_SuccessWithoutRunning(t *testing.T) {
	exporter, tp := newTestTracer()
	h := navotel.NewTracingHandler(tp.Tracer("test"))

	h.RunStarted("Outreach")
	// Success for a node that never opened a span must be a no-op.
	h.HandleStatus(runtime.StatusEvent{NodeID: "n1", Status: runtime.StatusSuccess}, "click")
	h.RunFinished(false)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected only the run span, got %d spans", len(spans))
	}
}

func TestTracingHandler_RunFinishedClosesOpenNodeSpans(t *testing.T) {
	exporter, tp := newTestTracer()
	h := navotel.NewTracingHandler(tp.Tracer("test"))

	h.RunStarted("Outreach")
	h.HandleStatus(runtime.StatusEvent{NodeID: "n1", Status: runtime.StatusRunning}, "wait")
	h.RunFinished(true)

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if h.ActiveSpanContext("n1").IsValid() {
		t.Error("node span still active after RunFinished")
	}
}

func TestTracingHandler_ActiveSpanContextUnknownNode(t *testing.T) {
	_, tp := newTestTracer()
	h := navotel.NewTracingHandler(tp.Tracer("test"))

	if h.ActiveSpanContext("ghost").IsValid() {
		t.Error("ActiveSpanContext(unknown) is valid, want zero SpanContext")
	}
}
