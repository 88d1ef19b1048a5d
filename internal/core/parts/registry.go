// Package parts holds named UI components that are constructed lazily, so
// expensive sub-trees (menus, dialogs, previews) are not built until first
// accessed.
package parts

import (
	"fmt"
)

// ErrNotRegistered is returned by Get for a name that was never registered.
// It indicates a wiring bug, not a runtime condition, and callers treat it as
// fatal.
var ErrNotRegistered = fmt.Errorf("part not registered")

// Factory constructs a part on first access.
type Factory[T any] func() T

// Registry is a keyed store of lazily-constructed parts. Each factory runs
// exactly once; subsequent Gets return the memoized instance.
type Registry[T any] struct {
	factories map[string]Factory[T]
	instances map[string]T
}

// NewRegistry creates an empty part registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		factories: make(map[string]Factory[T]),
		instances: make(map[string]T),
	}
}

// Register stores a factory under name without instantiating it. Registering
// a duplicate name is an error.
func (r *Registry[T]) Register(name string, factory Factory[T]) error {
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("part %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Get returns the part registered under name, constructing it on first call.
func (r *Registry[T]) Get(name string) (T, error) {
	if inst, ok := r.instances[name]; ok {
		return inst, nil
	}

	factory, ok := r.factories[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}

	inst := factory()
	r.instances[name] = inst
	return inst, nil
}

// MustGet is Get for call sites where a missing registration is a programming
// error worth crashing over.
func (r *Registry[T]) MustGet(name string) T {
	inst, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return inst
}

// Has reports whether the part has been instantiated. This is distinct from
// Registered: callers use Has to inspect already-active parts without forcing
// eager construction.
func (r *Registry[T]) Has(name string) bool {
	_, ok := r.instances[name]
	return ok
}

// Registered reports whether a factory exists for name.
func (r *Registry[T]) Registered(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered part names, unordered.
func (r *Registry[T]) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
