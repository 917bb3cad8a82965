package playbook

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/navreach/playbook/registry"
)

// Graph mutation errors.
var (
	// ErrConstraintViolation is returned when a mutation would break a
	// structural invariant, such as adding a second start node.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInvalidConnection is returned for connections the canvas rejects,
	// such as an edge from a node to itself.
	ErrInvalidConnection = errors.New("invalid connection")

	// ErrNodeNotFound is returned when an operation references a missing node.
	ErrNodeNotFound = errors.New("node not found")
)

// Store owns the node and edge collections for one open playbook and is
// the single writer per tick. Every derived component (scope resolver,
// layout, status tracker, transplant) reads a Snapshot and, where it
// produces new collections, writes them back through ReplaceNodes or
// ReplaceEdges.
//
// Store is not safe for concurrent use; the editor is single-threaded
// and event-driven.
type Store struct {
	nodes []Node
	edges []Edge
	reg   *registry.Registry
}

// NewStore creates an empty store. A nil registry falls back to the
// global builtin registry.
func NewStore(reg *registry.Registry) *Store {
	if reg == nil {
		reg = registry.Global()
	}
	return &Store{reg: reg}
}

// Nodes returns the live node slice in insertion order.
func (s *Store) Nodes() []Node {
	return s.nodes
}

// Edges returns the live edge slice in insertion order.
func (s *Store) Edges() []Edge {
	return s.edges
}

// NodeByID retrieves a node by its ID.
func (s *Store) NodeByID(id string) (Node, bool) {
	for _, n := range s.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Snapshot returns a copy of the current graph. Node and edge structs are
// copied; Config and Style maps are shared and must be treated as
// read-only by derived components.
func (s *Store) Snapshot() Graph {
	g := Graph{
		Nodes: make([]Node, len(s.nodes)),
		Edges: make([]Edge, len(s.edges)),
	}
	copy(g.Nodes, s.nodes)
	copy(g.Edges, s.edges)
	return g
}

// AddNode appends a new node of the given type at the given position with
// a fresh ID and empty config. Singleton types (start, end) are rejected
// with ErrConstraintViolation when one already exists. Unknown types are
// accepted; they render degraded but never fail.
func (s *Store) AddNode(nodeType string, pos Position) (Node, error) {
	if def, ok := s.reg.Get(nodeType); ok && def.Singleton {
		for _, n := range s.nodes {
			if n.Type == nodeType {
				return Node{}, fmt.Errorf("%w: only one %q node is allowed", ErrConstraintViolation, nodeType)
			}
		}
	}

	node := Node{
		ID:       uuid.NewString(),
		Type:     nodeType,
		Position: pos,
		Data: NodeData{
			Label:  s.labelFor(nodeType),
			Config: map[string]any{},
		},
	}
	s.nodes = append(s.nodes, node)
	return node, nil
}

// labelFor returns the display name for a node type, falling back to the
// raw type tag when the type is not registered.
func (s *Store) labelFor(nodeType string) string {
	if def, ok := s.reg.Get(nodeType); ok {
		return def.DisplayName
	}
	return nodeType
}

// NodeDataPatch is a partial update to a node's data. Nil fields are left
// untouched; Config entries are merged key by key into the existing map.
type NodeDataPatch struct {
	Label            *string
	Config           map[string]any
	ExecutionStatus  *ExecutionStatus
	ExecutionMessage *string
	LoopCount        *int
}

// UpdateNodeData merge-replaces the node's data. A missing ID is a no-op.
func (s *Store) UpdateNodeData(id string, patch NodeDataPatch) {
	for i := range s.nodes {
		if s.nodes[i].ID != id {
			continue
		}
		d := &s.nodes[i].Data
		if patch.Label != nil {
			d.Label = *patch.Label
		}
		if patch.Config != nil {
			if d.Config == nil {
				d.Config = map[string]any{}
			}
			for k, v := range patch.Config {
				d.Config[k] = v
			}
		}
		if patch.ExecutionStatus != nil {
			d.ExecutionStatus = *patch.ExecutionStatus
		}
		if patch.ExecutionMessage != nil {
			d.ExecutionMessage = *patch.ExecutionMessage
		}
		if patch.LoopCount != nil {
			d.LoopCount = *patch.LoopCount
		}
		return
	}
}

// DeleteNode removes the node and every edge incident to it. A missing ID
// is a no-op.
func (s *Store) DeleteNode(id string) {
	kept := s.nodes[:0]
	for _, n := range s.nodes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.nodes = kept

	keptEdges := s.edges[:0]
	for _, e := range s.edges {
		if e.Source != id && e.Target != id {
			keptEdges = append(keptEdges, e)
		}
	}
	s.edges = keptEdges
}

// Connect appends an edge between two existing nodes. Self-loops on a
// single node are rejected; edges that reconnect to an earlier node (loop
// back-edges) are permitted.
func (s *Store) Connect(source, target, sourceHandle, targetHandle string) (Edge, error) {
	if source == target {
		return Edge{}, fmt.Errorf("%w: cannot connect node %q to itself", ErrInvalidConnection, source)
	}
	if _, ok := s.NodeByID(source); !ok {
		return Edge{}, fmt.Errorf("%w: source %q: %s", ErrInvalidConnection, source, ErrNodeNotFound)
	}
	if _, ok := s.NodeByID(target); !ok {
		return Edge{}, fmt.Errorf("%w: target %q: %s", ErrInvalidConnection, target, ErrNodeNotFound)
	}

	edge := Edge{
		ID:           uuid.NewString(),
		Source:       source,
		Target:       target,
		SourceHandle: sourceHandle,
		TargetHandle: targetHandle,
	}
	s.edges = append(s.edges, edge)
	return edge, nil
}

// SetGraph replaces the node and edge collections wholesale, as on load
// from persistence or a full-playbook paste. Execution sub-fields and
// edge emphasis are cleared: they are run state, not document state.
func (s *Store) SetGraph(g Graph) {
	s.nodes = make([]Node, len(g.Nodes))
	copy(s.nodes, g.Nodes)
	s.edges = make([]Edge, len(g.Edges))
	copy(s.edges, g.Edges)
	s.ClearExecutionState()
}

// ReplaceNodes writes back a node collection produced by a derived
// component, such as the layout engine or the status tracker.
func (s *Store) ReplaceNodes(nodes []Node) {
	s.nodes = nodes
}

// ReplaceEdges writes back an edge collection produced by a derived
// component.
func (s *Store) ReplaceEdges(edges []Edge) {
	s.edges = edges
}

// ClearExecutionState removes execution status, message, and loop count
// from every node and emphasis from every edge.
func (s *Store) ClearExecutionState() {
	for i := range s.nodes {
		s.nodes[i].Data.ExecutionStatus = ""
		s.nodes[i].Data.ExecutionMessage = ""
		s.nodes[i].Data.LoopCount = 0
	}
	for i := range s.edges {
		s.edges[i].Animated = false
		s.edges[i].Style = nil
	}
}

// CountType returns how many nodes of the given type exist.
func (s *Store) CountType(nodeType string) int {
	count := 0
	for _, n := range s.nodes {
		if n.Type == nodeType {
			count++
		}
	}
	return count
}
