package scope

import (
	"reflect"
	"testing"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/registry"
)

// chainGraph builds start -> lead_list -> loop -> target, the common
// shape for list-driven playbooks.
func chainGraph() playbook.Graph {
	return playbook.Graph{
		Nodes: []playbook.Node{
			{ID: "start-1", Type: registry.TypeStart, Data: playbook.NodeData{Label: "Start"}},
			{ID: "list-1", Type: "lead_list", Data: playbook.NodeData{Label: "My Leads"}},
			{ID: "loop-1", Type: registry.TypeLoop, Data: playbook.NodeData{Label: "Loop"}},
			{ID: "msg-1", Type: "send_message", Data: playbook.NodeData{Label: "Send Message"}},
		},
		Edges: []playbook.Edge{
			{ID: "e1", Source: "start-1", Target: "list-1"},
			{ID: "e2", Source: "list-1", Target: "loop-1"},
			{ID: "e3", Source: "loop-1", Target: "msg-1", SourceHandle: registry.HandleItem},
		},
	}
}

func TestResolve_UpstreamOnly(t *testing.T) {
	g := chainGraph()
	// A downstream sibling the target must not see.
	g.Nodes = append(g.Nodes, playbook.Node{ID: "after-1", Type: "like_post", Data: playbook.NodeData{Label: "Like Post"}})
	g.Edges = append(g.Edges, playbook.Edge{ID: "e4", Source: "msg-1", Target: "after-1"})

	groups := NewResolver(nil, nil).Resolve(g, "msg-1", Globals{})

	for _, grp := range groups {
		if grp.NodeID == "after-1" {
			t.Error("Resolve() included a downstream node")
		}
		if grp.NodeID == "msg-1" {
			t.Error("Resolve() included the target node itself")
		}
	}
}

func TestResolve_ProducerGroups(t *testing.T) {
	groups := NewResolver(nil, nil).Resolve(chainGraph(), "msg-1", Globals{})

	// Upstream producers with variables: loop (outputs schema) then
	// lead_list (legacy fields), in breadth-first discovery order.
	// Start produces nothing and is skipped. The Agent group closes.
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %v, want 3: %+v", len(groups), groups)
	}
	if groups[0].NodeID != "loop-1" {
		t.Errorf("groups[0].NodeID = %q, want %q (nearest producer first)", groups[0].NodeID, "loop-1")
	}
	if groups[1].NodeID != "list-1" {
		t.Errorf("groups[1].NodeID = %q, want %q", groups[1].NodeID, "list-1")
	}
	if groups[2].Label != "Agent" {
		t.Errorf("groups[2].Label = %q, want %q", groups[2].Label, "Agent")
	}

	if got := groups[0].Variables[0].Token; got != "{{loop-1.item}}" {
		t.Errorf("loop token = %q, want %q", got, "{{loop-1.item}}")
	}
}

func TestResolve_Deterministic(t *testing.T) {
	g := chainGraph()
	r := NewResolver(nil, nil)

	first := r.Resolve(g, "msg-1", Globals{})
	for i := 0; i < 10; i++ {
		again := r.Resolve(g, "msg-1", Globals{})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Resolve() not deterministic:\nfirst = %+v\nagain = %+v", first, again)
		}
	}
}

func TestResolve_TerminatesOnCycle(t *testing.T) {
	g := chainGraph()
	// Loop back-edge: msg-1 -> loop-1 closes a cycle.
	g.Edges = append(g.Edges, playbook.Edge{ID: "back", Source: "msg-1", Target: "loop-1"})

	groups := NewResolver(nil, nil).Resolve(g, "msg-1", Globals{})

	seen := map[string]int{}
	for _, grp := range groups {
		if grp.NodeID != "" {
			seen[grp.NodeID]++
		}
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("producer %q appeared %d times, want once", id, count)
		}
	}
}

func TestResolve_DanglingEdgeSkipped(t *testing.T) {
	g := chainGraph()
	g.Edges = append(g.Edges, playbook.Edge{ID: "ghost-e", Source: "ghost", Target: "msg-1"})

	// Must not panic; the ghost producer contributes nothing.
	groups := NewResolver(nil, nil).Resolve(g, "msg-1", Globals{})
	for _, grp := range groups {
		if grp.NodeID == "ghost" {
			t.Error("Resolve() emitted a group for a missing node")
		}
	}
}

type fakeSamples map[string]map[string]string

func (f fakeSamples) Sample(listID string) (map[string]string, bool) {
	row, ok := f[listID]
	return row, ok
}

func TestResolve_LegacyListSample(t *testing.T) {
	g := chainGraph()
	g.Nodes[1].Data.Config = map[string]any{"list_id": "list-42"}

	samples := fakeSamples{"list-42": {
		"first_name": "Jane",
		"company":    "Acme",
	}}

	groups := NewResolver(nil, samples).Resolve(g, "msg-1", Globals{})

	var listGroup *Group
	for i := range groups {
		if groups[i].NodeID == "list-1" {
			listGroup = &groups[i]
		}
	}
	if listGroup == nil {
		t.Fatal("no group for lead_list producer")
	}
	if len(listGroup.Variables) != 6 {
		t.Fatalf("len(Variables) = %v, want 6 fixed list fields", len(listGroup.Variables))
	}

	first := listGroup.Variables[0]
	if first.Label != "First Name" {
		t.Errorf("Variables[0].Label = %q, want %q", first.Label, "First Name")
	}
	if first.Token != "{{list-1.first_name}}" {
		t.Errorf("Variables[0].Token = %q, want %q", first.Token, "{{list-1.first_name}}")
	}
	if first.Example != "Jane" {
		t.Errorf("Variables[0].Example = %q, want sampled %q", first.Example, "Jane")
	}

	// Fields missing from the sample row keep an empty example.
	for _, v := range listGroup.Variables {
		if v.Token == "{{list-1.title}}" && v.Example != "" {
			t.Errorf("title example = %q, want empty", v.Example)
		}
	}
}

func TestResolve_LegacyListNoSampleSource(t *testing.T) {
	g := chainGraph()
	g.Nodes[1].Data.Config = map[string]any{"list_id": "list-42"}

	groups := NewResolver(nil, nil).Resolve(g, "msg-1", Globals{})

	for _, grp := range groups {
		if grp.NodeID != "list-1" {
			continue
		}
		for _, v := range grp.Variables {
			if v.Example != "" {
				t.Errorf("nil sample source should degrade to empty examples, got %q", v.Example)
			}
		}
	}
}

func TestResolve_GlobalsOrder(t *testing.T) {
	globals := Globals{
		Playbooks:    []CatalogEntry{{ID: "pb-1", Name: "Warmup"}},
		Lists:        []CatalogEntry{{ID: "l-1", Name: "Founders"}},
		Integrations: []CatalogEntry{{ID: "i-1", Name: "CRM"}},
	}

	groups := NewResolver(nil, nil).Resolve(playbook.Graph{
		Nodes: []playbook.Node{{ID: "only", Type: "navigate"}},
	}, "only", globals)

	want := []string{"Saved playbooks", "Target lists", "Integrations", "Agent"}
	if len(groups) != len(want) {
		t.Fatalf("len(groups) = %v, want %v", len(groups), len(want))
	}
	for i, label := range want {
		if groups[i].Label != label {
			t.Errorf("groups[%d].Label = %q, want %q", i, groups[i].Label, label)
		}
	}
}

func TestResolve_AgentGroupAlwaysPresent(t *testing.T) {
	groups := NewResolver(nil, nil).Resolve(playbook.Graph{
		Nodes: []playbook.Node{{ID: "only", Type: "navigate"}},
	}, "only", Globals{})

	if len(groups) != 1 {
		t.Fatalf("len(groups) = %v, want 1", len(groups))
	}
	agent := groups[0]
	if agent.Label != "Agent" {
		t.Fatalf("Label = %q, want %q", agent.Label, "Agent")
	}
	if len(agent.Variables) != 1 || agent.Variables[0].Token != "{{agent.auto}}" {
		t.Errorf("agent variables = %+v, want single {{agent.auto}}", agent.Variables)
	}
}

func TestToken(t *testing.T) {
	if got := Token("node-7", "page_url"); got != "{{node-7.page_url}}" {
		t.Errorf("Token() = %q, want %q", got, "{{node-7.page_url}}")
	}
}

func TestFieldLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"first_name", "First Name"},
		{"profile_url", "Profile Url"},
		{"company", "Company"},
	}
	for _, tt := range tests {
		if got := fieldLabel(tt.in); got != tt.want {
			t.Errorf("fieldLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
