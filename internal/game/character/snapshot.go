package character

import (
	"fmt"

	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/currency"
	"github.com/cory-johannsen/mechanics/internal/game/inventory"
	"github.com/cory-johannsen/mechanics/internal/game/progression"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

// Snapshot is the plain-data form of a Character. Items are referenced by ID
// and effects carry behaviour names only, so a Snapshot round-trips through JSON.
type Snapshot struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Level      int                `json:"level"`
	Experience int                `json:"experience"`
	Attributes stats.Attributes   `json:"attributes"`
	Stats      stats.Derived      `json:"stats"`
	Purse      currency.Currency  `json:"purse"`
	Inventory  inventory.State    `json:"inventory"`
	Effects    []condition.Effect `json:"effects"`
}

// Snapshot captures c's persistent state.
func (c *Character) Snapshot() Snapshot {
	return Snapshot{
		ID:         c.ID,
		Name:       c.Name,
		Level:      c.Level,
		Experience: c.Experience,
		Attributes: c.Attributes,
		Stats:      c.Stats,
		Purse:      c.Purse,
		Inventory:  c.Inventory.State(),
		Effects:    c.Effects.All(),
	}
}

// FromSnapshot rebuilds a Character, re-attaching item templates from items.
// The default experience curve is used; call SetCurve to override it.
//
// Postcondition: Returns an error if any referenced item is unknown to items.
func FromSnapshot(s Snapshot, items *inventory.Registry) (*Character, error) {
	inv, err := inventory.Restore(s.Inventory, items)
	if err != nil {
		return nil, fmt.Errorf("restoring character %q: %w", s.ID, err)
	}
	effects := condition.NewActiveSet()
	for _, e := range s.Effects {
		effects.Apply(e)
	}
	return &Character{
		ID:         s.ID,
		Name:       s.Name,
		Level:      s.Level,
		Experience: s.Experience,
		Attributes: s.Attributes,
		Stats:      s.Stats,
		Effects:    effects,
		Inventory:  inv,
		Purse:      s.Purse,
		curve:      progression.Default,
	}, nil
}
