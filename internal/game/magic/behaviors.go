package magic

import (
	"fmt"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/combat"
	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

// DamageSpell deals amount plus the caster's intelligence modifier to the
// target. Target defense does not apply.
func DamageSpell(amount int) Behavior {
	return BehaviorFunc(func(caster, target *character.Character, s Spell) action.Result {
		if target == nil {
			return action.Fail("No target specified")
		}
		dmg := combat.CalculateDamage(amount, stats.Modifier(caster.Attributes.Intelligence), 1, 0)
		target.TakeDamage(dmg)
		return action.Result{
			Success: true,
			Damage:  dmg,
			Message: fmt.Sprintf("%s's %s hits %s for %d damage", caster.Name, s.Name, target.Name, dmg),
		}
	})
}

// HealSpell restores amount HP to the target, or to the caster when no
// target is given.
func HealSpell(amount int) Behavior {
	return BehaviorFunc(func(caster, target *character.Character, s Spell) action.Result {
		recipient := target
		if recipient == nil {
			recipient = caster
		}
		before := recipient.Stats.HP
		recipient.Heal(amount)
		return action.Result{
			Success: true,
			Message: fmt.Sprintf("%s's %s heals %s for %d", caster.Name, s.Name, recipient.Name, recipient.Stats.HP-before),
		}
	})
}

// EffectSpell applies a copy of e to the target, or to the caster when onSelf
// is set or no target is given.
func EffectSpell(e condition.Effect, onSelf bool) Behavior {
	return BehaviorFunc(func(caster, target *character.Character, s Spell) action.Result {
		recipient := target
		if onSelf || recipient == nil {
			recipient = caster
		}
		recipient.ApplyEffect(e)
		return action.Result{
			Success: true,
			Effects: []string{e.ID},
			Message: fmt.Sprintf("%s's %s afflicts %s with %s", caster.Name, s.Name, recipient.Name, e.Name),
		}
	})
}
