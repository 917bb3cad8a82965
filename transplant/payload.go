// Package transplant implements copy, paste, import, and export for
// playbook graphs: normalizing the accepted clipboard shapes, classifying
// full-playbook replacement versus fragment merge, and remapping ids so a
// pasted fragment never collides with or duplicates the live graph's
// singletons.
package transplant

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/registry"
)

// Transplant errors.
var (
	// ErrUnrecognizedPayload marks clipboard content that is not any
	// accepted playbook shape. Callers ignore it silently: ordinary text
	// copy/paste must not produce visible errors.
	ErrUnrecognizedPayload = errors.New("unrecognized clipboard payload")

	// ErrNothingToPaste is returned when singleton filtering empties the
	// incoming fragment. Surfaced as a warning, never merged silently.
	ErrNothingToPaste = errors.New("nothing to paste")

	// ErrInvalidDocument marks an import payload missing required
	// playbook-level fields.
	ErrInvalidDocument = errors.New("invalid playbook document")
)

// Payload is a normalized paste payload. Doc is non-nil when the payload
// carried playbook-level metadata (a graph wrapper, capabilities, or
// name+description); otherwise Nodes/Edges hold a bare fragment.
type Payload struct {
	Doc   *playbook.Document
	Nodes []playbook.Node
	Edges []playbook.Edge
}

// HasMetadata reports whether the payload is a full playbook document
// rather than a bare fragment.
func (p Payload) HasMetadata() bool {
	return p.Doc != nil
}

// Graph returns the payload's node/edge set regardless of shape.
func (p Payload) Graph() playbook.Graph {
	if p.Doc != nil {
		return p.Doc.Graph
	}
	return playbook.Graph{Nodes: p.Nodes, Edges: p.Edges}
}

// Normalize parses raw clipboard or file content into a Payload. Four
// shapes are accepted: a full export document, a bare {nodes,edges}
// fragment (optionally nested under a "graph" key), a bare node array,
// and a single node object. Anything else returns
// ErrUnrecognizedPayload.
func Normalize(raw []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Payload{}, ErrUnrecognizedPayload
	}

	// Bare node array.
	if trimmed[0] == '[' {
		var nodes []playbook.Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil || len(nodes) == 0 {
			return Payload{}, ErrUnrecognizedPayload
		}
		return Payload{Nodes: nodes}, nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return Payload{}, ErrUnrecognizedPayload
	}

	_, hasGraph := keys["graph"]
	_, hasCaps := keys["capabilities"]
	_, hasName := keys["name"]
	_, hasDesc := keys["description"]
	_, hasNodes := keys["nodes"]

	// Full export document: graph wrapper, capabilities, or name+description.
	if hasGraph || hasCaps || (hasName && hasDesc) {
		var doc playbook.Document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return Payload{}, ErrUnrecognizedPayload
		}
		// Tolerate documents that carry nodes/edges at the top level
		// instead of under "graph".
		if !hasGraph && hasNodes {
			var frag playbook.Graph
			if err := json.Unmarshal(trimmed, &frag); err != nil {
				return Payload{}, ErrUnrecognizedPayload
			}
			doc.Graph = frag
		}
		return Payload{Doc: &doc}, nil
	}

	// Bare {nodes, edges} fragment.
	if hasNodes {
		var frag playbook.Graph
		if err := json.Unmarshal(trimmed, &frag); err != nil || len(frag.Nodes) == 0 {
			return Payload{}, ErrUnrecognizedPayload
		}
		return Payload{Nodes: frag.Nodes, Edges: frag.Edges}, nil
	}

	// Single node object.
	if _, hasID := keys["id"]; hasID {
		if _, hasType := keys["type"]; hasType {
			var node playbook.Node
			if err := json.Unmarshal(trimmed, &node); err != nil {
				return Payload{}, ErrUnrecognizedPayload
			}
			return Payload{Nodes: []playbook.Node{node}}, nil
		}
	}

	return Payload{}, ErrUnrecognizedPayload
}

// Kind classifies how a paste payload is applied to the live graph.
type Kind int

const (
	// KindFullReplacement replaces nodes, edges, and metadata wholesale.
	KindFullReplacement Kind = iota

	// KindFragmentMerge appends the payload to the live graph with fresh ids.
	KindFragmentMerge
)

// Classify decides between full replacement and fragment merge: full when
// the payload carries playbook-level metadata, or when the live canvas is
// still the minimal start+end skeleton.
func Classify(p Payload, live playbook.Graph) Kind {
	if p.HasMetadata() || MinimalSkeleton(live) {
		return KindFullReplacement
	}
	return KindFragmentMerge
}

// NeedsConfirmation reports whether applying this payload requires
// explicit human confirmation: a full-playbook replacement onto a canvas
// that already exceeds the minimal skeleton. The engine never prompts;
// the embedding UI owns the dialog.
func NeedsConfirmation(p Payload, live playbook.Graph) bool {
	return Classify(p, live) == KindFullReplacement && !MinimalSkeleton(live)
}

// MinimalSkeleton reports whether the graph holds nothing beyond the
// start+end pair a fresh canvas is seeded with.
func MinimalSkeleton(g playbook.Graph) bool {
	if len(g.Nodes) > 2 {
		return false
	}
	for _, n := range g.Nodes {
		if n.Type != registry.TypeStart && n.Type != registry.TypeEnd {
			return false
		}
	}
	return true
}
