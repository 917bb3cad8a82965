// Package playbook provides the core data model for NavReach automation
// playbooks: a directed graph of automation steps edited on a canvas and
// executed by an external browser-automation runtime.
//
// This package contains:
//   - Node, Edge, Position: the canvas graph shapes
//   - Document: the persisted/exported playbook envelope
//   - Store: the single-writer owner of the node and edge collections
package playbook

// ExecutionStatus is the per-node visual execution state painted by the
// status tracker while a run is in progress.
type ExecutionStatus string

const (
	StatusRunning ExecutionStatus = "running"
	StatusSuccess ExecutionStatus = "success"
	StatusError   ExecutionStatus = "error"
)

// String returns the string representation of the ExecutionStatus.
func (s ExecutionStatus) String() string {
	return string(s)
}

// Position is a node's top-left canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the mutable payload attached to each node. Config is an
// opaque key-value map; per-type validation belongs to the configuration
// surface, not the graph engine. The execution sub-fields are owned
// exclusively by the status tracker and are cleared whenever a playbook
// is loaded.
type NodeData struct {
	Label            string          `json:"label"`
	Config           map[string]any  `json:"config,omitempty"`
	ExecutionStatus  ExecutionStatus `json:"executionStatus,omitempty"`
	ExecutionMessage string          `json:"executionMessage,omitempty"`
	LoopCount        int             `json:"loopCount,omitempty"`
}

// Node is a single automation step on the canvas.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`

	// Measured size from the renderer; zero means unmeasured and layout
	// falls back to a default box.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	Selected bool `json:"selected,omitempty"`
}

// Edge is a directed connection between two nodes. SourceHandle and
// TargetHandle name the ports on each end; specialized handles
// (true/false, item/done) carry branch and loop-iteration semantics.
type Edge struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	SourceHandle string         `json:"sourceHandle,omitempty"`
	TargetHandle string         `json:"targetHandle,omitempty"`
	Animated     bool           `json:"animated"`
	Style        map[string]any `json:"style,omitempty"`
	Selected     bool           `json:"selected,omitempty"`
}

// Graph is the serializable node/edge pair, the wire shape shared by the
// store snapshot, clipboard fragments, and the export document.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Document is the persisted and exported playbook envelope. Capabilities
// and ExecutionDefaults are opaque to the graph engine; the store
// validates graph structure at save time but not their contents.
type Document struct {
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Version           string         `json:"version"`
	Graph             Graph          `json:"graph"`
	Capabilities      map[string]any `json:"capabilities"`
	ExecutionDefaults map[string]any `json:"execution_defaults"`
}

// ExecutionMode returns the execution mode from ExecutionDefaults, or
// empty string when unset.
func (d Document) ExecutionMode() string {
	if d.ExecutionDefaults == nil {
		return ""
	}
	mode, _ := d.ExecutionDefaults["mode"].(string)
	return mode
}

// ModeAutonomous marks a playbook that an agent drives end-to-end; such
// playbooks may legitimately have no end node.
const ModeAutonomous = "autonomous"
