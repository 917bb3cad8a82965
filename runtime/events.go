// Package runtime consumes the status-event stream of the external
// browser-automation runtime and reconciles it into per-node and per-edge
// visual state on the playbook canvas.
//
// The automation runtime executes out of process. This package never
// shares memory with it: it subscribes to an inbound asynchronous event
// stream and issues a fire-and-forget stop command.
package runtime

// Status is the execution state reported for one node.
type Status string

const (
	StatusRunning Status = "running"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// StatusEvent is the inbound event shape emitted by the automation
// runtime: zero or more per run, and any node may repeat (loops).
type StatusEvent struct {
	NodeID  string `json:"nodeId"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Stopper issues the outbound stop command to the automation runtime.
// The command carries no payload and is idempotent; trailing events
// delivered after a stop are expected and are discarded by the tracker's
// stale-event guard rather than unsubscribing eagerly.
type Stopper interface {
	Stop()
}

// StopperFunc adapts a function to the Stopper interface.
type StopperFunc func()

// Stop calls the function.
func (f StopperFunc) Stop() {
	if f != nil {
		f()
	}
}
