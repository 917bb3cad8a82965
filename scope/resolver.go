// Package scope computes the ordered set of template variables a node can
// use in its configuration, by walking the playbook graph upstream. The
// output powers template-variable autocomplete in the configuration
// surface.
package scope

import (
	"fmt"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/registry"
)

// Variable is one autocomplete entry: a human label, the rendered
// template token ({{nodeID.key}} for node outputs), and an example value
// where one is known.
type Variable struct {
	Label   string `json:"label"`
	Token   string `json:"token"`
	Example string `json:"example,omitempty"`
}

// Group is an ordered set of variables from one producer: an upstream
// node, or one of the global catalogues appended after the walk.
type Group struct {
	Label     string     `json:"label"`
	NodeID    string     `json:"node_id,omitempty"` // empty for global groups
	NodeType  string     `json:"node_type,omitempty"`
	Variables []Variable `json:"variables"`
}

// SampleSource supplies one live example row for a saved target list, so
// list-sourcing variables can show a real value in autocomplete. A nil
// source degrades to examples-free output, never an error.
type SampleSource interface {
	Sample(listID string) (map[string]string, bool)
}

// Resolver walks a graph snapshot upstream from a node. It is a pure,
// re-entrant function of the snapshot: identical edge order and identical
// global catalogues yield identical output.
type Resolver struct {
	reg     *registry.Registry
	samples SampleSource
}

// NewResolver creates a resolver. A nil registry falls back to the global
// builtin registry; samples may be nil.
func NewResolver(reg *registry.Registry, samples SampleSource) *Resolver {
	if reg == nil {
		reg = registry.Global()
	}
	return &Resolver{reg: reg, samples: samples}
}

// Resolve returns the variable groups usable in the given node's
// configuration: one group per upstream producer, in deterministic
// breadth-first discovery order over the stored edges, followed by the
// global catalogue groups.
//
// The walk is iterative with an explicit visited set seeded with the
// starting node, so it terminates on graphs with loop back-edges.
func (r *Resolver) Resolve(g playbook.Graph, nodeID string, globals Globals) []Group {
	nodesByID := make(map[string]playbook.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		nodesByID[n.ID] = n
	}

	visited := map[string]bool{nodeID: true}
	queue := []string{nodeID}

	var groups []Group
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		// Predecessors in stored edge order keeps the output stable.
		for _, e := range g.Edges {
			if e.Target != current || visited[e.Source] {
				continue
			}
			visited[e.Source] = true
			queue = append(queue, e.Source)

			producer, ok := nodesByID[e.Source]
			if !ok {
				continue // dangling edge; validation reports it elsewhere
			}
			if group, ok := r.groupFor(producer); ok {
				groups = append(groups, group)
			}
		}
	}

	groups = append(groups, globals.groups()...)
	return groups
}

// groupFor builds the variable group for one producer node. Nodes whose
// type declares an outputs schema emit one variable per entry; legacy
// list-sourcing types emit their fixed field set plus one live sampled
// example. Producers with nothing to offer return ok=false.
func (r *Resolver) groupFor(producer playbook.Node) (Group, bool) {
	if vars, ok := legacyVariables(producer.Type); ok {
		return r.legacyGroup(producer, vars), true
	}

	def, ok := r.reg.Get(producer.Type)
	if !ok || len(def.Outputs) == 0 {
		return Group{}, false
	}

	group := Group{
		Label:    producer.Data.Label,
		NodeID:   producer.ID,
		NodeType: producer.Type,
	}
	for _, out := range def.Outputs {
		group.Variables = append(group.Variables, Variable{
			Label:   out.Label,
			Token:   Token(producer.ID, out.TemplateKey),
			Example: out.Example,
		})
	}
	return group, true
}

// legacyGroup renders the fixed field set of a list-sourcing node,
// enriched with a live sample row when the node references a saved list
// and a sample source is available.
func (r *Resolver) legacyGroup(producer playbook.Node, fields []string) Group {
	var sample map[string]string
	if r.samples != nil {
		if listID, ok := producer.Data.Config["list_id"].(string); ok && listID != "" {
			sample, _ = r.samples.Sample(listID)
		}
	}

	group := Group{
		Label:    producer.Data.Label,
		NodeID:   producer.ID,
		NodeType: producer.Type,
	}
	for _, field := range fields {
		group.Variables = append(group.Variables, Variable{
			Label:   fieldLabel(field),
			Token:   Token(producer.ID, field),
			Example: sample[field],
		})
	}
	return group
}

// Token renders the template placeholder for a producer output.
func Token(nodeID, key string) string {
	return fmt.Sprintf("{{%s.%s}}", nodeID, key)
}

// legacyListFields is the fixed variable set exposed by list-sourcing
// node types that predate declared output schemas.
var legacyListFields = []string{
	"first_name",
	"last_name",
	"full_name",
	"company",
	"title",
	"profile_url",
}

// legacyVariables returns the fixed field set for node types with known
// legacy semantics, and ok=false for everything else.
func legacyVariables(nodeType string) ([]string, bool) {
	switch nodeType {
	case "lead_list", "csv_import", "scrape_list":
		return legacyListFields, true
	}
	return nil, false
}

// fieldLabel turns a snake_case field name into a display label.
func fieldLabel(field string) string {
	out := make([]byte, 0, len(field))
	upper := true
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == '_' {
			out = append(out, ' ')
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		out = append(out, c)
	}
	return string(out)
}
