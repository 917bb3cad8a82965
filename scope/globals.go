package scope

// CatalogEntry is one saved resource surfaced to autocomplete: a saved
// sub-playbook, a saved target list, or a connected integration.
type CatalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Globals are the graph-independent catalogues appended after the
// upstream walk. They come from persistence and the integrations
// directory, not from the canvas.
type Globals struct {
	Playbooks    []CatalogEntry // saved sub-playbooks
	Lists        []CatalogEntry // saved target lists
	Integrations []CatalogEntry // connected external tools/servers
}

// groups renders the global catalogues in their fixed order: playbooks,
// lists, integrations, then the synthetic agent entry. Empty catalogues
// are skipped; the agent entry is always present.
func (g Globals) groups() []Group {
	var out []Group

	if len(g.Playbooks) > 0 {
		group := Group{Label: "Saved playbooks"}
		for _, e := range g.Playbooks {
			group.Variables = append(group.Variables, Variable{
				Label: e.Name,
				Token: Token("playbooks", e.ID),
			})
		}
		out = append(out, group)
	}

	if len(g.Lists) > 0 {
		group := Group{Label: "Target lists"}
		for _, e := range g.Lists {
			group.Variables = append(group.Variables, Variable{
				Label: e.Name,
				Token: Token("lists", e.ID),
			})
		}
		out = append(out, group)
	}

	if len(g.Integrations) > 0 {
		group := Group{Label: "Integrations"}
		for _, e := range g.Integrations {
			group.Variables = append(group.Variables, Variable{
				Label: e.Name,
				Token: Token("integrations", e.ID),
			})
		}
		out = append(out, group)
	}

	out = append(out, Group{
		Label: "Agent",
		Variables: []Variable{
			{Label: "Let the agent decide", Token: Token("agent", "auto")},
		},
	})

	return out
}
