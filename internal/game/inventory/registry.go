package inventory

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownItem is returned when an item ID is not in the Registry.
var ErrUnknownItem = errors.New("unknown item")

// Registry holds item templates indexed by ID.
type Registry struct {
	items map[string]*Item
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Item)}
}

// NewRegistryFrom returns a Registry holding items.
//
// Postcondition: returns an error on the first duplicate ID.
func NewRegistryFrom(items []*Item) (*Registry, error) {
	reg := NewRegistry()
	for _, it := range items {
		if err := reg.RegisterItem(it); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// RegisterItem adds it to the registry.
//
// Precondition:  it must not be nil.
// Postcondition: Item(it.ID) returns a copy of it; returns error if it.ID already registered.
func (r *Registry) RegisterItem(it *Item) error {
	if _, exists := r.items[it.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterItem: item ID %q already registered", it.ID)
	}
	r.items[it.ID] = it
	return nil
}

// Item returns a copy of the template for id and whether it was found.
func (r *Registry) Item(id string) (Item, bool) {
	it, ok := r.items[id]
	if !ok {
		return Item{}, false
	}
	return it.clone(), true
}

// All returns copies of every registered template ordered by ID.
func (r *Registry) All() []Item {
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it.clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
