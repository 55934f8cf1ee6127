// Package character defines the character aggregate: attributes, derived
// vitals, progression, active status effects, inventory and purse.
package character

import (
	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/currency"
	"github.com/cory-johannsen/mechanics/internal/game/inventory"
	"github.com/cory-johannsen/mechanics/internal/game/progression"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

// Character is one combatant or player character.
//
// Invariant: 0 <= Stats.HP <= Stats.MaxHP, 0 <= Stats.MP <= Stats.MaxMP and
// 0 <= Stats.ActionPoints <= Stats.MaxActionPoints for every mutation made
// through methods. Level and Experience never decrease.
type Character struct {
	ID         string
	Name       string
	Level      int
	Experience int
	Attributes stats.Attributes
	Stats      stats.Derived
	Effects    *condition.ActiveSet
	Inventory  *inventory.Inventory
	Purse      currency.Currency

	curve progression.Curve
}

// New constructs a level 1 character with zero experience, full vitals, an
// empty default inventory and no effects. Attributes are not validated.
func New(id, name string, attrs stats.Attributes) *Character {
	return &Character{
		ID:         id,
		Name:       name,
		Level:      1,
		Attributes: attrs,
		Stats:      stats.Calculate(attrs, 1),
		Effects:    condition.NewActiveSet(),
		Inventory:  inventory.NewDefault(),
		curve:      progression.Default,
	}
}

// Curve returns the experience curve used for level calculation.
func (c *Character) Curve() progression.Curve { return c.curve }

// SetCurve replaces the experience curve. The current level is not recomputed.
func (c *Character) SetCurve(curve progression.Curve) { c.curve = curve }

// GainExperience adds amount to Experience and levels up when the new total
// clears the next threshold.
//
// Postcondition: returns true iff Level increased. Non-positive amounts are
// ignored and return false.
func (c *Character) GainExperience(amount int) bool {
	if amount <= 0 {
		return false
	}
	c.Experience += amount
	newLevel := c.curve.Level(c.Experience)
	if newLevel <= c.Level {
		return false
	}
	c.levelUp(newLevel)
	return true
}

// levelUp recomputes derived stats at newLevel, scaling HP and MP by their
// pre-jump ratios. Action points refill.
func (c *Character) levelUp(newLevel int) {
	old := c.Stats
	next := stats.Calculate(c.Attributes, newLevel)
	if old.MaxHP > 0 {
		next.HP = next.MaxHP * old.HP / old.MaxHP
	}
	if old.MaxMP > 0 {
		next.MP = next.MaxMP * old.MP / old.MaxMP
	}
	c.Level = newLevel
	c.Stats = next
}

// IsAlive reports whether HP is above zero.
func (c *Character) IsAlive() bool { return c.Stats.HP > 0 }

// TakeDamage subtracts amount from HP, clamped to [0, MaxHP].
// A negative amount heals.
func (c *Character) TakeDamage(amount int) {
	c.Stats.HP = clamp(c.Stats.HP-amount, 0, c.Stats.MaxHP)
}

// Heal adds amount to HP, clamped to [0, MaxHP].
func (c *Character) Heal(amount int) {
	c.Stats.HP = clamp(c.Stats.HP+amount, 0, c.Stats.MaxHP)
}

// RestoreMana adds amount to MP, clamped to [0, MaxMP].
func (c *Character) RestoreMana(amount int) {
	c.Stats.MP = clamp(c.Stats.MP+amount, 0, c.Stats.MaxMP)
}

// SpendMana deducts amount from MP.
//
// Postcondition: returns false without mutation when MP < amount.
func (c *Character) SpendMana(amount int) bool {
	if amount < 0 || c.Stats.MP < amount {
		return false
	}
	c.Stats.MP -= amount
	return true
}

// AdjustActionPoints adds delta to the action point pool, clamped to
// [0, MaxActionPoints].
func (c *Character) AdjustActionPoints(delta int) {
	c.Stats.ActionPoints = clamp(c.Stats.ActionPoints+delta, 0, c.Stats.MaxActionPoints)
}

// DerivedStats returns a copy of the current derived stats.
func (c *Character) DerivedStats() stats.Derived { return c.Stats }

// ApplyEffect applies e, replacing any active effect with the same ID.
func (c *Character) ApplyEffect(e condition.Effect) { c.Effects.Apply(e) }

// RemoveEffect removes the active effect with id, if any.
func (c *Character) RemoveEffect(id string) { c.Effects.Remove(id) }

// TickEffects runs one tick of every active effect against c and returns the
// IDs of effects that expired.
func (c *Character) TickEffects(b *condition.Behaviors) []string {
	return c.Effects.Tick(c, b)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
