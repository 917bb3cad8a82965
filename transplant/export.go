package transplant

import (
	"encoding/json"
	"fmt"

	"github.com/navreach/playbook"
)

// Export serializes a playbook document to the interchange JSON shape:
// name, description, version, graph, capabilities, execution_defaults.
// Import accepts exactly this shape back.
func Export(doc playbook.Document) ([]byte, error) {
	if doc.Graph.Nodes == nil {
		doc.Graph.Nodes = []playbook.Node{}
	}
	if doc.Graph.Edges == nil {
		doc.Graph.Edges = []playbook.Edge{}
	}
	if doc.Capabilities == nil {
		doc.Capabilities = map[string]any{}
	}
	if doc.ExecutionDefaults == nil {
		doc.ExecutionDefaults = map[string]any{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding playbook: %w", err)
	}
	return data, nil
}

// Import parses an export document and validates it has the required
// playbook-level fields. A failure here is surfaced to the user; the live
// graph is never partially mutated.
func Import(raw []byte) (playbook.Document, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return playbook.Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if _, ok := keys["graph"]; !ok {
		return playbook.Document{}, fmt.Errorf("%w: missing graph", ErrInvalidDocument)
	}
	if _, ok := keys["capabilities"]; !ok {
		return playbook.Document{}, fmt.Errorf("%w: missing capabilities", ErrInvalidDocument)
	}

	var doc playbook.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return playbook.Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}
