package colormap

import (
	"fmt"
	"sync"
)

// Registry is an immutable named collection of colormaps. It is built
// once and never mutated, so any number of concurrent readers is safe
// without locking.
type Registry struct {
	maps  map[string]*Map
	order []string
}

// NewRegistry builds a registry from the given maps. Duplicate names
// are rejected.
func NewRegistry(maps ...*Map) (*Registry, error) {
	r := &Registry{
		maps:  make(map[string]*Map, len(maps)),
		order: make([]string, 0, len(maps)),
	}
	for _, m := range maps {
		if _, ok := r.maps[m.Name()]; ok {
			return nil, fmt.Errorf("duplicate colormap %q", m.Name())
		}
		r.maps[m.Name()] = m
		r.order = append(r.order, m.Name())
	}
	return r, nil
}

// Get returns the colormap registered under name, or *NotFoundError
// when the name is unused.
func (r *Registry) Get(name string) (*Map, error) {
	m, ok := r.maps[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return m, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.maps[name]
	return ok
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	cp := make([]string, len(r.order))
	copy(cp, r.order)
	return cp
}

// Len returns the number of registered colormaps.
func (r *Registry) Len() int {
	return len(r.order)
}

// With returns a new registry containing this registry's maps plus the
// given extras. Name collisions are rejected.
func (r *Registry) With(extra ...*Map) (*Registry, error) {
	all := make([]*Map, 0, len(r.order)+len(extra))
	for _, name := range r.order {
		all = append(all, r.maps[name])
	}
	all = append(all, extra...)
	return NewRegistry(all...)
}

var (
	builtinOnce sync.Once
	builtinReg  *Registry
)

// Builtin returns the registry of built-in colormaps. The registry is
// constructed once at first use and shared thereafter.
func Builtin() *Registry {
	builtinOnce.Do(func() {
		r, err := NewRegistry(
			Viridis,
			Plasma,
			Inferno,
			Magma,
			Jet,
			Gray,
			Wiridis,
		)
		if err != nil {
			panic(err)
		}
		builtinReg = r
	})
	return builtinReg
}
