package item

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownType is returned when an item type ID is not registered.
var ErrUnknownType = errors.New("item: unknown type")

// Registry holds all loaded item types indexed by ID.
type Registry struct {
	types map[string]*Type
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds t to the registry.
//
// Precondition: t must not be nil.
// Postcondition: Type(t.ID) returns (t, true); returns error if t.ID already registered.
func (r *Registry) Register(t *Type) error {
	if _, exists := r.types[t.ID]; exists {
		return fmt.Errorf("item: Registry.Register: type ID %q already registered", t.ID)
	}
	r.types[t.ID] = t
	return nil
}

// Type returns the Type for id and whether it was found.
func (r *Registry) Type(id string) (*Type, bool) {
	t, ok := r.types[id]
	return t, ok
}

// MustType returns the Type for id or an error wrapping ErrUnknownType.
func (r *Registry) MustType(id string) (*Type, error) {
	t, ok := r.types[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, id)
	}
	return t, nil
}

// All returns every registered Type sorted by ID.
//
// Postcondition: len(result) == number of registered types.
func (r *Registry) All() []*Type {
	out := make([]*Type, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
