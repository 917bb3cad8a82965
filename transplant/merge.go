package transplant

import (
	"github.com/google/uuid"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/registry"
)

// PasteOffset is the fixed delta applied to every pasted node so the
// transplant never lands exactly on top of its source.
var PasteOffset = playbook.Position{X: 40, Y: 40}

// Merge applies a fragment paste: singleton filtering, fresh ids, a fixed
// position offset, and selection transfer. The returned graph holds the
// previous content deselected plus the transplanted set selected; the
// input graph is not modified.
//
// Incoming start/end nodes are dropped when the live graph already has
// one of that singleton type. If filtering empties the incoming set,
// Merge returns ErrNothingToPaste and the live graph unchanged.
func Merge(p Payload, live playbook.Graph, reg *registry.Registry) (playbook.Graph, error) {
	if reg == nil {
		reg = registry.Global()
	}
	incoming := p.Graph()

	liveSingletons := make(map[string]bool)
	for _, n := range live.Nodes {
		if def, ok := reg.Get(n.Type); ok && def.Singleton {
			liveSingletons[n.Type] = true
		}
	}

	idMap := make(map[string]string)
	var pastedNodes []playbook.Node
	for _, n := range incoming.Nodes {
		if liveSingletons[n.Type] {
			continue
		}
		fresh := uuid.NewString()
		idMap[n.ID] = fresh

		n.ID = fresh
		n.Position.X += PasteOffset.X
		n.Position.Y += PasteOffset.Y
		n.Selected = true
		// Run state never transplants.
		n.Data.ExecutionStatus = ""
		n.Data.ExecutionMessage = ""
		n.Data.LoopCount = 0
		pastedNodes = append(pastedNodes, n)
	}

	if len(pastedNodes) == 0 {
		return live, ErrNothingToPaste
	}

	var pastedEdges []playbook.Edge
	for _, e := range incoming.Edges {
		source, okSource := idMap[e.Source]
		target, okTarget := idMap[e.Target]
		if !okSource || !okTarget {
			continue // endpoint did not survive filtering
		}
		e.ID = uuid.NewString()
		e.Source = source
		e.Target = target
		e.Selected = true
		e.Animated = false
		e.Style = nil
		pastedEdges = append(pastedEdges, e)
	}

	merged := playbook.Graph{
		Nodes: make([]playbook.Node, 0, len(live.Nodes)+len(pastedNodes)),
		Edges: make([]playbook.Edge, 0, len(live.Edges)+len(pastedEdges)),
	}
	for _, n := range live.Nodes {
		n.Selected = false
		merged.Nodes = append(merged.Nodes, n)
	}
	for _, e := range live.Edges {
		e.Selected = false
		merged.Edges = append(merged.Edges, e)
	}
	merged.Nodes = append(merged.Nodes, pastedNodes...)
	merged.Edges = append(merged.Edges, pastedEdges...)

	return merged, nil
}
