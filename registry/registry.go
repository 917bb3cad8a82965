// Package registry provides the node-type catalogue for NavReach
// playbooks. It maps type tags to metadata (ports, category, declared
// output variables) used by the graph store, the variable scope resolver,
// the transplant logic, and the canvas palette.
package registry

import "sync"

// Well-known node type tags referenced across the engine.
const (
	TypeStart     = "start"
	TypeEnd       = "end"
	TypeLoop      = "loop"
	TypeCondition = "condition"
)

// Specialized handle names. Edges using these keep their fixed visual
// side across relayouts; everything else is a generic port.
const (
	HandleTrue  = "true"
	HandleFalse = "false"
	HandleItem  = "item"
	HandleDone  = "done"
)

// SpecializedHandle reports whether a handle name carries branch or loop
// semantics rather than being a generic in/out port.
func SpecializedHandle(name string) bool {
	switch name {
	case HandleTrue, HandleFalse, HandleItem, HandleDone:
		return true
	}
	return false
}

// OutputVar declares one template variable a node type exposes to
// downstream nodes. TemplateKey is the suffix of the rendered token
// {{nodeID.templateKey}}.
type OutputVar struct {
	Label       string `json:"label"`
	TemplateKey string `json:"template_key"`
	Example     string `json:"example,omitempty"`
}

// NodeTypeDef describes a registered node type. Types without a declared
// Outputs schema either produce nothing or rely on legacy variable sets
// resolved by the scope resolver (list-sourcing types).
type NodeTypeDef struct {
	Type        string      `json:"type"`
	DisplayName string      `json:"display_name"`
	Category    string      `json:"category"` // "control", "timing", "navigation", "data", "social", "ai"
	InputPorts  int         `json:"input_ports"`
	OutputPorts int         `json:"output_ports"`
	Singleton   bool        `json:"singleton"` // at most one per graph (start, end)
	Outputs     []OutputVar `json:"outputs,omitempty"`
}

var (
	global     *Registry
	globalOnce sync.Once
)

// Global returns the singleton registry instance. On first call it
// initializes the registry and auto-registers all built-in node types.
func Global() *Registry {
	globalOnce.Do(func() {
		global = newRegistry()
		registerBuiltins(global)
	})
	return global
}

// Registry holds all known node types.
type Registry struct {
	mu    sync.RWMutex
	types map[string]NodeTypeDef
	order []string // preserves registration order
}

func newRegistry() *Registry {
	return &Registry{
		types: make(map[string]NodeTypeDef),
	}
}

// New returns an empty registry, mainly for tests that need a controlled
// catalogue.
func New() *Registry {
	return newRegistry()
}

// Register adds a node type definition. If a type with the same tag
// already exists it is overwritten.
func (r *Registry) Register(def NodeTypeDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[def.Type]; !exists {
		r.order = append(r.order, def.Type)
	}
	r.types[def.Type] = def
}

// Get returns a node type definition by tag. An absent definition is not
// an error; callers must treat it as a degraded-rendering condition.
func (r *Registry) Get(typeName string) (NodeTypeDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.types[typeName]
	return def, ok
}

// Has returns true if the type tag is registered.
func (r *Registry) Has(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[typeName]
	return ok
}

// All returns all registered node types in registration order. Used by
// the palette API.
func (r *Registry) All() []NodeTypeDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]NodeTypeDef, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.types[name])
	}
	return result
}

// Len returns the number of registered node types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}
