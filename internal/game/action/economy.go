package action

import "github.com/cory-johannsen/mechanics/internal/game/character"

// DefaultCosts returns the standard action-point cost table.
func DefaultCosts() map[Type]int {
	return map[Type]int{
		TypeAttack:  2,
		TypeDefend:  12,
		TypeMove:    1,
		TypeUtility: 1,
		TypeSpell:   2,
	}
}

// Economy is an immutable action-point cost table.
type Economy struct {
	costs map[Type]int
}

// NewEconomy returns an Economy using DefaultCosts with overrides applied.
func NewEconomy(overrides map[Type]int) Economy {
	costs := DefaultCosts()
	for t, c := range overrides {
		costs[t] = c
	}
	return Economy{costs: costs}
}

// DefaultEconomy returns an Economy with DefaultCosts.
func DefaultEconomy() Economy { return NewEconomy(nil) }

// Costs returns a copy of the cost table.
func (e Economy) Costs() map[Type]int {
	out := make(map[Type]int, len(e.costs))
	for t, c := range e.costs {
		out[t] = c
	}
	return out
}

// Cost returns the table cost of t multiplied by modifier.
// Types absent from the table cost 0.
func (e Economy) Cost(t Type, modifier int) int {
	return e.costs[t] * modifier
}

// CanPerform reports whether c has enough action points for t.
// A negative modifier never permits an action.
func (e Economy) CanPerform(c *character.Character, t Type, modifier int) bool {
	cost := e.Cost(t, modifier)
	return cost >= 0 && c.Stats.ActionPoints >= cost
}

// Consume deducts the cost of t from c.
//
// Postcondition: returns false without mutation when c cannot afford it.
func (e Economy) Consume(c *character.Character, t Type, modifier int) bool {
	if !e.CanPerform(c, t, modifier) {
		return false
	}
	c.Stats.ActionPoints -= e.Cost(t, modifier)
	return true
}

// Reset refills c's action points to the maximum.
func (e Economy) Reset(c *character.Character) {
	c.Stats.ActionPoints = c.Stats.MaxActionPoints
}
