package magic

import (
	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
)

// ActionPrefix starts the action ID of every spell cast.
const ActionPrefix = "cast_"

// ActionID returns the action ID under which spellID is cast in combat.
func ActionID(spellID string) string { return ActionPrefix + spellID }

// SpellAction returns the combat action descriptor for s.
func SpellAction(s Spell) action.Action {
	return action.Action{
		ID:          ActionID(s.ID),
		Name:        s.Name,
		Description: "Cast " + s.Name,
		Type:        action.TypeSpell,
		APCost:      action.DefaultCosts()[action.TypeSpell],
	}
}

// SpellResolver casts spellID from the actor's own book.
func SpellResolver(books *Books, spellID string) action.Resolver {
	return action.ResolverFunc(func(actor, target *character.Character) action.Result {
		book, ok := books.Get(actor.ID)
		if !ok {
			return action.Fail("%s cannot cast spells", actor.Name)
		}
		if _, known := book.Spell(spellID); !known {
			return action.Fail("%s does not know %s", actor.Name, spellID)
		}
		return book.Cast(actor, target, spellID)
	})
}

// RegisterSpells adds a spell action for each spell to catalog.
func RegisterSpells(catalog *action.Catalog, books *Books, spells []Spell) error {
	for _, s := range spells {
		if err := catalog.Register(SpellAction(s), SpellResolver(books, s.ID)); err != nil {
			return err
		}
	}
	return nil
}
