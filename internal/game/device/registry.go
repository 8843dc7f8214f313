package device

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/shipyard/internal/game/item"
)

// Registry holds every device class, indexed by class ID and by item type ID.
type Registry struct {
	byID   map[string]Class
	byItem map[string]Class
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Class),
		byItem: make(map[string]Class),
	}
}

// Register adds c to the registry.
//
// Precondition: c must not be nil and c.ItemType() must be non-nil.
// Postcondition: Class(c.ID()) returns c; returns error if the class ID or its
// item type is already registered.
func (r *Registry) Register(c Class) error {
	if _, exists := r.byID[c.ID()]; exists {
		return fmt.Errorf("device: Registry.Register: class ID %q already registered", c.ID())
	}
	itemID := c.ItemType().ID
	if other, exists := r.byItem[itemID]; exists {
		return fmt.Errorf("device: Registry.Register: item %q already installs as class %q", itemID, other.ID())
	}
	r.byID[c.ID()] = c
	r.byItem[itemID] = c
	return nil
}

// Class returns the class with the given ID.
func (r *Registry) Class(id string) (Class, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// ForItemType returns the class that items of type t install as.
//
// Postcondition: ok is false when t is nil, not a device type, or unregistered.
func (r *Registry) ForItemType(t *item.Type) (Class, bool) {
	if t == nil || !t.IsDevice() {
		return nil, false
	}
	c, ok := r.byItem[t.ID]
	return c, ok
}

// All returns every registered class sorted by ID.
func (r *Registry) All() []Class {
	out := make([]Class, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
