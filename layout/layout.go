// Package layout recomputes node positions for a playbook graph using a
// ranked, layered placement, and rewrites generic edge handles to match
// the layout direction. It is a pure function of its inputs: re-running
// it on an already-laid-out graph reproduces the same coordinates.
package layout

import (
	"sort"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/registry"
)

// Direction selects the main layout axis.
type Direction string

const (
	TopToBottom Direction = "TB"
	LeftToRight Direction = "LR"
)

// Standard handle names assigned to generic-port edges per direction.
const (
	handleTop    = "top"
	handleBottom = "bottom"
	handleLeft   = "left"
	handleRight  = "right"
)

// Config holds the spacing and default-size parameters. Spacing is sized
// generously so loop back-edges route clear of forward edges.
type Config struct {
	NodeSep       float64 // gap between nodes within a rank
	RankSep       float64 // gap between ranks
	DefaultWidth  float64 // box for unmeasured nodes
	DefaultHeight float64
}

// DefaultConfig returns the spacing used by the canvas.
func DefaultConfig() Config {
	return Config{
		NodeSep:       80,
		RankSep:       140,
		DefaultWidth:  240,
		DefaultHeight: 120,
	}
}

// Apply returns new node and edge slices with recomputed positions and
// standardized generic handles. The input graph is not modified. Edges
// whose source handle carries branch or loop semantics keep both handles
// so their fixed visual side survives relayout.
func Apply(g playbook.Graph, dir Direction, cfg Config) ([]playbook.Node, []playbook.Edge) {
	nodes := make([]playbook.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	edges := make([]playbook.Edge, len(g.Edges))
	copy(edges, g.Edges)

	if len(nodes) == 0 {
		return nodes, edges
	}

	layers := assignLayers(g)
	place(nodes, layers, dir, cfg)

	for i := range edges {
		if registry.SpecializedHandle(edges[i].SourceHandle) {
			continue
		}
		switch dir {
		case LeftToRight:
			edges[i].SourceHandle = handleRight
			edges[i].TargetHandle = handleLeft
		default:
			edges[i].SourceHandle = handleBottom
			edges[i].TargetHandle = handleTop
		}
	}

	return nodes, edges
}

// assignLayers ranks nodes by breadth-first distance from the entry
// nodes. The visited set makes the walk safe on loop back-edges: an edge
// returning to an already-ranked node never reopens a layer. Nodes
// unreachable from any entry (pure cycles, disconnected fragments) are
// appended to the first layer, matching where the canvas drops them.
func assignLayers(g playbook.Graph) [][]string {
	indexOf := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		indexOf[n.ID] = i
	}

	hasInbound := make(map[string]bool)
	successors := make(map[string][]string)
	for _, e := range g.Edges {
		if _, ok := indexOf[e.Source]; !ok {
			continue
		}
		if _, ok := indexOf[e.Target]; !ok {
			continue
		}
		hasInbound[e.Target] = true
		successors[e.Source] = append(successors[e.Source], e.Target)
	}

	var roots []string
	for _, n := range g.Nodes {
		if !hasInbound[n.ID] {
			roots = append(roots, n.ID)
		}
	}
	if len(roots) == 0 {
		// Every node is inside a cycle; anchor at the first stored node.
		roots = []string{g.Nodes[0].ID}
	}

	visited := make(map[string]bool, len(g.Nodes))
	for _, id := range roots {
		visited[id] = true
	}

	layers := [][]string{roots}
	for {
		var next []string
		for _, id := range layers[len(layers)-1] {
			for _, succ := range successors[id] {
				if !visited[succ] {
					visited[succ] = true
					next = append(next, succ)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		sort.Slice(next, func(i, j int) bool {
			return indexOf[next[i]] < indexOf[next[j]]
		})
		layers = append(layers, next)
	}

	var unreached []string
	for _, n := range g.Nodes {
		if !visited[n.ID] {
			unreached = append(unreached, n.ID)
		}
	}
	layers[0] = append(layers[0], unreached...)

	return layers
}

// place assigns top-left positions from layer ranks: ranks advance along
// the main axis, nodes within a rank are centered on the cross axis, and
// each computed center maps back to a top-left corner (center - size/2).
func place(nodes []playbook.Node, layers [][]string, dir Direction, cfg Config) {
	byID := make(map[string]*playbook.Node, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	size := func(n *playbook.Node) (w, h float64) {
		w, h = n.Width, n.Height
		if w <= 0 {
			w = cfg.DefaultWidth
		}
		if h <= 0 {
			h = cfg.DefaultHeight
		}
		return w, h
	}

	mainOffset := 0.0
	for _, layer := range layers {
		// Rank extent along the main axis is its deepest node.
		rankExtent := 0.0
		crossTotal := 0.0
		for i, id := range layer {
			n := byID[id]
			w, h := size(n)
			main, cross := h, w
			if dir == LeftToRight {
				main, cross = w, h
			}
			if main > rankExtent {
				rankExtent = main
			}
			crossTotal += cross
			if i > 0 {
				crossTotal += cfg.NodeSep
			}
		}

		crossOffset := -crossTotal / 2
		for _, id := range layer {
			n := byID[id]
			w, h := size(n)

			if dir == LeftToRight {
				centerX := mainOffset + rankExtent/2
				centerY := crossOffset + h/2
				n.Position = playbook.Position{X: centerX - w/2, Y: centerY - h/2}
				crossOffset += h + cfg.NodeSep
			} else {
				centerY := mainOffset + rankExtent/2
				centerX := crossOffset + w/2
				n.Position = playbook.Position{X: centerX - w/2, Y: centerY - h/2}
				crossOffset += w + cfg.NodeSep
			}
		}

		mainOffset += rankExtent + cfg.RankSep
	}
}
