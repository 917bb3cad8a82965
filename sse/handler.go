// Package sse streams automation-runtime status events to HTTP clients
// as Server-Sent Events. The desktop shell uses it to watch a run's
// per-node progress without polling.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/navreach/playbook/bus"
	"github.com/navreach/playbook/runtime"
)

// HeartbeatInterval is the interval between SSE heartbeat comments.
const HeartbeatInterval = 15 * time.Second

// Handler serves an SSE stream of status events from the event bus.
//
// SSE format:
//
//	event: status
//	data: {json}
//
// A heartbeat comment ": ping\n\n" is sent every 15 seconds. The stream
// closes when the client disconnects or the bus shuts down.
type Handler struct {
	bus bus.EventBus
}

// NewHandler creates a Handler subscribed to the given bus.
func NewHandler(eb bus.EventBus) *Handler {
	return &Handler{bus: eb}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	sub := h.bus.Subscribe()
	defer sub.Close()

	heartbeat := time.NewTicker(HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-sub.Events():
			if !ok {
				// Bus closed.
				return
			}
			if err := writeEvent(w, evt); err != nil {
				return
			}
			flusher.Flush()

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// writeEvent writes a single status event in SSE format.
func writeEvent(w http.ResponseWriter, evt runtime.StatusEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: status\ndata: %s\n\n", data)
	return err
}
