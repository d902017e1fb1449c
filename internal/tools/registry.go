package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Registry is the immutable operation catalog, built once at startup.
type Registry struct {
	ops   map[string]Operation
	order []string
}

// NewRegistry builds a registry. Names must be unique and handlers non-nil.
func NewRegistry(ops ...Operation) (*Registry, error) {
	r := &Registry{
		ops:   make(map[string]Operation, len(ops)),
		order: make([]string, 0, len(ops)),
	}
	for _, op := range ops {
		name := op.Name()
		if name == "" {
			return nil, fmt.Errorf("operation without a name")
		}
		if op.Handler == nil {
			return nil, fmt.Errorf("operation %s has no handler", name)
		}
		if _, dup := r.ops[name]; dup {
			return nil, fmt.Errorf("duplicate operation %s", name)
		}
		r.ops[name] = op
		r.order = append(r.order, name)
	}
	return r, nil
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Operations returns all operations in catalog order.
func (r *Registry) Operations() []Operation {
	out := make([]Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name])
	}
	return out
}

// Tools returns the advertised tool definitions in catalog order.
func (r *Registry) Tools() []mcp.Tool {
	out := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name].Tool)
	}
	return out
}

// Len returns the number of operations.
func (r *Registry) Len() int {
	return len(r.order)
}
