package playbook

import (
	"fmt"

	"github.com/navreach/playbook/registry"
)

// Diagnostic represents a validation error or warning produced by
// structural validation of a playbook graph.
type Diagnostic struct {
	Code     string `json:"code"`           // e.g. "PB-001"
	Severity string `json:"severity"`       // "error" or "warning"
	Message  string `json:"message"`        // human-readable description
	Path     string `json:"path,omitempty"` // JSON path to offending field
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// HasErrors returns true if any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics.
func Errors(diags []Diagnostic) []Diagnostic {
	var errs []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}
	return errs
}

// Warnings returns only the warning-severity diagnostics.
func Warnings(diags []Diagnostic) []Diagnostic {
	var warns []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			warns = append(warns, d)
		}
	}
	return warns
}

// Validate checks structural integrity of the graph:
//   - PB-001: edge source/target reference existing nodes
//   - PB-002: nodes with no inbound and no outbound edges (warning)
//   - PB-003: duplicate node IDs
//   - PB-004: more than one node of a singleton type
//
// Cycles are deliberately not checked: loop nodes legitimately create
// back-edges. Registry-dependent checks are in ValidateWithRegistry.
func (g Graph) Validate() []Diagnostic {
	var diags []Diagnostic

	nodeIDs := make(map[string]bool, len(g.Nodes))

	// PB-003: duplicate node IDs
	for i, node := range g.Nodes {
		if nodeIDs[node.ID] {
			diags = append(diags, Diagnostic{
				Code:     "PB-003",
				Severity: SeverityError,
				Message:  fmt.Sprintf("Duplicate node ID %q", node.ID),
				Path:     fmt.Sprintf("nodes[%d].id", i),
			})
		}
		nodeIDs[node.ID] = true
	}

	// PB-001: edge source/target must reference existing nodes
	for i, edge := range g.Edges {
		if !nodeIDs[edge.Source] {
			diags = append(diags, Diagnostic{
				Code:     "PB-001",
				Severity: SeverityError,
				Message:  fmt.Sprintf("Edge source %q references unknown node", edge.Source),
				Path:     fmt.Sprintf("edges[%d].source", i),
			})
		}
		if !nodeIDs[edge.Target] {
			diags = append(diags, Diagnostic{
				Code:     "PB-001",
				Severity: SeverityError,
				Message:  fmt.Sprintf("Edge target %q references unknown node", edge.Target),
				Path:     fmt.Sprintf("edges[%d].target", i),
			})
		}
	}

	// PB-002: disconnected nodes
	if len(g.Nodes) > 1 {
		hasInbound := make(map[string]bool)
		hasOutbound := make(map[string]bool)
		for _, edge := range g.Edges {
			hasOutbound[edge.Source] = true
			hasInbound[edge.Target] = true
		}
		for i, node := range g.Nodes {
			if !hasInbound[node.ID] && !hasOutbound[node.ID] {
				diags = append(diags, Diagnostic{
					Code:     "PB-002",
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("Node %q has no inbound or outbound edges", node.ID),
					Path:     fmt.Sprintf("nodes[%d]", i),
				})
			}
		}
	}

	return diags
}

// ValidateWithRegistry runs structural validation plus registry-dependent
// checks:
//   - PB-004: at most one node of each singleton type
//   - PB-007: unknown node type (warning; renders degraded, never fails)
func (g Graph) ValidateWithRegistry(reg *registry.Registry) []Diagnostic {
	diags := g.Validate()
	if reg == nil {
		return diags
	}

	singletonCount := make(map[string]int)
	for i, node := range g.Nodes {
		def, ok := reg.Get(node.Type)
		if !ok {
			diags = append(diags, Diagnostic{
				Code:     "PB-007",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Node %q has unrecognized type %q", node.ID, node.Type),
				Path:     fmt.Sprintf("nodes[%d].type", i),
			})
			continue
		}
		if def.Singleton {
			singletonCount[node.Type]++
		}
	}

	for _, nodeType := range []string{registry.TypeStart, registry.TypeEnd} {
		if singletonCount[nodeType] > 1 {
			diags = append(diags, Diagnostic{
				Code:     "PB-004",
				Severity: SeverityError,
				Message:  fmt.Sprintf("Graph has %d %q nodes; at most one is allowed", singletonCount[nodeType], nodeType),
			})
		}
	}

	return diags
}
