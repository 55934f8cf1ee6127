package ai

import (
	"strings"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/combat"
	"github.com/cory-johannsen/mechanics/internal/game/magic"
)

// BuildWorldState snapshots enc from self's point of view. sideOf maps a
// character ID to its side; books may be nil when nobody casts.
//
// Facts set: hp_pct, mp, ap, round, enemies, allies (excluding self),
// wounded_allies (self included, below half HP), and can_<action> = 1 for
// every catalog action self could perform right now, 0 otherwise.
//
// Precondition: enc, catalog, self and sideOf must not be nil.
// Postcondition: ws.Self.ID == self.ID.
func BuildWorldState(enc *combat.Encounter, catalog *action.Catalog, books *magic.Books, self *character.Character, sideOf func(id string) string) *WorldState {
	ws := &WorldState{Facts: make(map[string]int)}
	for _, c := range enc.Participants() {
		cs := &Combatant{
			ID:      c.ID,
			Name:    c.Name,
			Side:    sideOf(c.ID),
			HP:      c.Stats.HP,
			MaxHP:   c.Stats.MaxHP,
			Defense: c.Stats.Defense,
			Dead:    !c.IsAlive(),
		}
		if c.ID == self.ID {
			ws.Self = cs
		}
		ws.Combatants = append(ws.Combatants, cs)
	}
	if ws.Self == nil {
		ws.Self = &Combatant{ID: self.ID, Name: self.Name, Side: sideOf(self.ID), HP: self.Stats.HP, MaxHP: self.Stats.MaxHP}
		ws.Combatants = append(ws.Combatants, ws.Self)
	}

	others, wounded := 0, 0
	for _, a := range ws.Allies() {
		if a.ID != self.ID {
			others++
		}
		if a.HPPercent() < 50 {
			wounded++
		}
	}
	ws.Facts["hp_pct"] = ws.Self.HPPercent()
	ws.Facts["mp"] = self.Stats.MP
	ws.Facts["ap"] = self.Stats.ActionPoints
	ws.Facts["round"] = enc.Round()
	ws.Facts["enemies"] = len(ws.Enemies())
	ws.Facts["allies"] = others
	ws.Facts["wounded_allies"] = wounded

	econ := enc.Economy()
	for _, a := range catalog.All() {
		v := 0
		if usable(a, self, econ, books) {
			v = 1
		}
		ws.Facts["can_"+a.ID] = v
	}
	return ws
}

func usable(a action.Action, self *character.Character, econ action.Economy, books *magic.Books) bool {
	if !econ.CanPerform(self, a.Type, 1) {
		return false
	}
	if spellID, ok := strings.CutPrefix(a.ID, magic.ActionPrefix); ok && a.Type == action.TypeSpell {
		if books == nil {
			return false
		}
		book, ok := books.Get(self.ID)
		return ok && book.CanCast(self, spellID)
	}
	if itemID, ok := strings.CutPrefix(a.ID, combat.UseItemPrefix); ok && a.Type == action.TypeUtility {
		return self.Inventory.Count(itemID) > 0
	}
	return true
}
