package tools

import (
	"context"
	"fmt"
	"sync"
)

// Registry is the flat ordered list of tools given to the agent.
// Registration order is preserved so the definitions sent to the LLM
// are stable across runs.
type Registry struct {
	order []string
	tools map[string]*Tool
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*Tool),
	}
}

// Register adds a tool. Re-registering a name replaces the tool but
// keeps its original position.
func (r *Registry) Register(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name]; !exists {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = tool
}

func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns all tool definitions in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Execute runs a tool by name. Required fields declared in the schema
// must be present in the input; that presence check is the only
// validation performed before the handler runs.
func (r *Registry) Execute(ctx context.Context, name string, input map[string]any) (any, error) {
	r.mu.RLock()
	tool, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	in := Input(input)
	if in == nil {
		in = Input{}
	}
	for _, field := range tool.requiredFields() {
		if !in.Has(field) {
			return nil, fmt.Errorf("tool %s: missing required field %q", name, field)
		}
	}

	return tool.Handler(ctx, in)
}
