package inference

import (
	"fmt"
	"sort"
)

// Factory builds a backend client. Construction may allocate network
// resources, so clients are built per selection rather than up front.
type Factory func() (Client, error)

// Registry maps configured backend names to client factories. The selected
// backend is looked up on every suggestion request, so configuration changes
// take effect without restarting.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// New builds a client for the named backend.
func (r *Registry) New(name string) (Client, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, r.Names())
	}
	client, err := factory()
	if err != nil {
		return nil, fmt.Errorf("build backend %s > %w", name, err)
	}
	return client, nil
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
