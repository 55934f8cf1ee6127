package magic

import (
	"sort"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
)

// Book is one caster's known spells with their cooldown state.
// It is not safe for concurrent use.
type Book struct {
	spells    map[string]*Spell
	behaviors *Behaviors
}

// NewBook creates an empty Book that resolves cast behaviour through behaviors.
//
// Precondition: behaviors must not be nil.
func NewBook(behaviors *Behaviors) *Book {
	return &Book{spells: make(map[string]*Spell), behaviors: behaviors}
}

// Learn stores a copy of s, replacing any spell with the same ID.
func (b *Book) Learn(s Spell) {
	cp := s
	b.spells[s.ID] = &cp
}

// Forget removes the spell with id.
func (b *Book) Forget(id string) { delete(b.spells, id) }

// Spell returns a copy of the known spell with id.
func (b *Book) Spell(id string) (Spell, bool) {
	s, ok := b.spells[id]
	if !ok {
		return Spell{}, false
	}
	return *s, true
}

// Spells returns copies of every known spell ordered by ID.
func (b *Book) Spells() []Spell {
	out := make([]Spell, 0, len(b.spells))
	for _, s := range b.spells {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CanCast reports whether caster knows id, has at least its mana cost, and
// the spell is off cooldown.
func (b *Book) CanCast(caster *character.Character, id string) bool {
	s, ok := b.spells[id]
	return ok && caster.Stats.MP >= s.ManaCost && s.CurrentCooldown <= 0
}

// Cast spends the spell's mana, starts its cooldown, then runs its behaviour.
//
// Postcondition: on an unsuccessful Result nothing was spent.
func (b *Book) Cast(caster, target *character.Character, id string) action.Result {
	s, ok := b.spells[id]
	if !ok {
		return action.Fail("Unknown spell %s", id)
	}
	if s.CurrentCooldown > 0 {
		return action.Fail("%s is on cooldown for %d more rounds", s.Name, s.CurrentCooldown)
	}
	if caster.Stats.MP < s.ManaCost {
		return action.Fail("Not enough mana for %s", s.Name)
	}
	if s.Targeted && target == nil {
		return action.Fail("No target specified")
	}
	behavior, ok := b.behaviors.Get(id)
	if !ok {
		return action.Fail("%s has no effect", s.Name)
	}
	caster.SpendMana(s.ManaCost)
	s.CurrentCooldown = s.Cooldown
	return behavior.Cast(caster, target, *s)
}

// UpdateCooldowns decrements every positive cooldown by one.
func (b *Book) UpdateCooldowns() {
	for _, s := range b.spells {
		if s.CurrentCooldown > 0 {
			s.CurrentCooldown--
		}
	}
}

// Books holds the spell book of each caster, keyed by character ID.
type Books struct {
	byCaster map[string]*Book
}

// NewBooks returns an empty set.
func NewBooks() *Books {
	return &Books{byCaster: make(map[string]*Book)}
}

// Add assigns book to the character with casterID.
func (bs *Books) Add(casterID string, book *Book) {
	bs.byCaster[casterID] = book
}

// Get returns the book for casterID.
func (bs *Books) Get(casterID string) (*Book, bool) {
	b, ok := bs.byCaster[casterID]
	return b, ok
}

// UpdateCooldowns advances every book by one round.
func (bs *Books) UpdateCooldowns() {
	for _, b := range bs.byCaster {
		b.UpdateCooldowns()
	}
}
