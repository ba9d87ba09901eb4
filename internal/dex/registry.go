package dex

// Registry is a name-keyed collection of adapters. It is built once per
// engine and is not internally synchronized; callers sharing one across
// goroutines must provide their own locking.
type Registry struct {
	adapters map[string]Adapter
	order    []string
}

// NewRegistry creates an empty adapter registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register adds an adapter under its name. Re-registering a name replaces
// the previous adapter and keeps its original position.
func (r *Registry) Register(adapter Adapter) {
	name := adapter.Name()
	if _, exists := r.adapters[name]; !exists {
		r.order = append(r.order, name)
	}
	r.adapters[name] = adapter
}

// Get returns the adapter registered under name, if any
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// All returns every registered adapter in registration order
func (r *Registry) All() []Adapter {
	out := make([]Adapter, 0, len(r.adapters))
	for _, name := range r.order {
		out = append(out, r.adapters[name])
	}
	return out
}
