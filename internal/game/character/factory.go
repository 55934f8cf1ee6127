package character

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/mechanics/internal/game/inventory"
	"github.com/cory-johannsen/mechanics/internal/game/progression"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

// ErrInvalidAttributes is returned by Factory when an attribute is outside
// [stats.MinAttribute, stats.MaxAttribute].
var ErrInvalidAttributes = errors.New("invalid character attributes")

// Factory builds validated characters with a shared ruleset.
type Factory struct {
	Curve         progression.Curve
	InventorySize int
	MaxWeight     float64
	// NewID generates character IDs.
	NewID func() string
}

// NewFactory returns a Factory with the default curve and inventory limits
// and random UUID identifiers.
func NewFactory() *Factory {
	return &Factory{
		Curve:         progression.Default,
		InventorySize: inventory.DefaultSize,
		MaxWeight:     inventory.DefaultMaxWeight,
		NewID:         uuid.NewString,
	}
}

// Human creates a level 1 character after validating attrs.
//
// Precondition: name must be non-empty.
// Postcondition: Returns a new Character, or an error wrapping
// ErrInvalidAttributes when any attribute is out of range.
func (f *Factory) Human(name string, attrs stats.Attributes) (*Character, error) {
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if !stats.ValidateAttributes(attrs) {
		return nil, fmt.Errorf("creating %q: %w: %+v", name, ErrInvalidAttributes, attrs)
	}
	c := New(f.NewID(), name, attrs)
	c.curve = f.Curve
	c.Inventory = inventory.New(f.InventorySize, f.MaxWeight)
	return c, nil
}
