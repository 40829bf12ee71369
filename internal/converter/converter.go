package converter

import (
	"context"
	"fmt"
	"sort"
)

// Converter is a single-shot batch that turns every document in a directory into JSON.
type Converter interface {
	Name() string
	Convert(ctx context.Context) (int, error)
}

// Registry keeps a mapping from converter names to their implementations.
type Registry struct {
	converters map[string]Converter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{converters: map[string]Converter{}}
}

// Register adds or replaces a converter implementation.
func (r *Registry) Register(c Converter) {
	if r.converters == nil {
		r.converters = map[string]Converter{}
	}
	r.converters[c.Name()] = c
}

// Resolve returns a converter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Converter, error) {
	if c, ok := r.converters[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("converter %s is not registered", name)
}

// Names lists registered converters in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.converters))
	for name := range r.converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
