package combat

import (
	"fmt"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/dice"
	"github.com/cory-johannsen/mechanics/internal/game/inventory"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

const (
	// BaseAttackDamage is the damage of an attack with no weapon dice.
	BaseAttackDamage = 10
	// NaturalCritical is the d20 face that turns a hit into a critical hit.
	NaturalCritical = 20
	// DefendingEffectID marks a character that took the defend action.
	DefendingEffectID = "defending"
)

// Standard action IDs.
const (
	ActionAttack = "attack"
	ActionDefend = "defend"
	ActionMove   = "move"
)

// StandardActions returns the built-in attack, defend and move descriptors.
func StandardActions() []action.Action {
	costs := action.DefaultCosts()
	return []action.Action{
		{ID: ActionAttack, Name: "Attack", Description: "Strike a target with the equipped weapon.", Type: action.TypeAttack, APCost: costs[action.TypeAttack]},
		{ID: ActionDefend, Name: "Defend", Description: "Brace against the next attack.", Type: action.TypeDefend, APCost: costs[action.TypeDefend]},
		{ID: ActionMove, Name: "Move", Description: "Reposition on the field.", Type: action.TypeMove, APCost: costs[action.TypeMove]},
	}
}

// DefaultCatalog returns a catalog holding StandardActions bound to their
// built-in resolvers. roller may be nil, which disables weapon dice and
// critical hits.
func DefaultCatalog(roller *dice.Roller) *action.Catalog {
	c := action.NewCatalog()
	resolvers := map[string]action.Resolver{
		ActionAttack: AttackResolver(roller),
		ActionDefend: DefendResolver(),
		ActionMove:   MoveResolver(),
	}
	for _, a := range StandardActions() {
		if err := c.Register(a, resolvers[a.ID]); err != nil {
			panic(fmt.Sprintf("combat: registering standard action: %v", err))
		}
	}
	return c
}

// AttackResolver damages the target by the actor's weapon plus strength
// modifier, less the target's defense. With a roller, an equipped weapon's
// DamageDice are rolled and a natural 20 on a d20 is a critical hit.
func AttackResolver(roller *dice.Roller) action.Resolver {
	return action.ResolverFunc(func(actor, target *character.Character) action.Result {
		if target == nil {
			return action.Fail("No target specified")
		}
		if !target.IsAlive() {
			return action.Fail("%s is already down", target.Name)
		}
		crit := roller != nil && roller.D20() == NaturalCritical
		base, err := weaponDamage(actor, roller)
		if err != nil {
			return action.Fail("%s fumbles: %v", actor.Name, err)
		}
		dmg := CalculateDamage(base, stats.Modifier(actor.Attributes.Strength), 1, defenseOf(target))
		verb := "hits"
		if crit {
			dmg = CalculateCriticalHit(dmg)
			verb = "critically hits"
		}
		target.TakeDamage(dmg)
		return action.Result{
			Success: true,
			Damage:  dmg,
			Message: fmt.Sprintf("%s %s %s for %d damage", actor.Name, verb, target.Name, dmg),
		}
	})
}

func weaponDamage(actor *character.Character, roller *dice.Roller) (int, error) {
	w, ok := actor.Inventory.Equipped(inventory.TypeWeapon)
	if !ok {
		return BaseAttackDamage, nil
	}
	if w.DamageDice != "" && roller != nil {
		r, err := roller.RollExpr(w.DamageDice)
		if err != nil {
			return 0, fmt.Errorf("weapon %q: %w", w.ID, err)
		}
		return r.Total(), nil
	}
	if d := w.Effects["damage"]; d > 0 {
		return d, nil
	}
	return BaseAttackDamage, nil
}

// defenseOf is the derived defense plus equipped armor and accessory
// "defense" effects plus any defending bonus.
func defenseOf(c *character.Character) int {
	def := c.Stats.Defense
	for _, it := range c.Inventory.EquippedItems() {
		def += it.Effects["defense"]
	}
	if e, ok := c.Effects.Get(DefendingEffectID); ok {
		def += e.Magnitude
	}
	return def
}

// Defending returns the effect applied by the defend action: the actor's
// defense is doubled until the next action resolves.
func Defending(c *character.Character) condition.Effect {
	return condition.Effect{
		ID:          DefendingEffectID,
		Name:        "Defending",
		Description: "Braced for the next blow.",
		Kind:        condition.Beneficial,
		Duration:    2,
		Magnitude:   c.Stats.Defense,
	}
}

// DefendResolver applies Defending to the actor.
func DefendResolver() action.Resolver {
	return action.ResolverFunc(func(actor, _ *character.Character) action.Result {
		actor.ApplyEffect(Defending(actor))
		return action.Result{
			Success: true,
			Effects: []string{DefendingEffectID},
			Message: fmt.Sprintf("%s takes a defensive stance", actor.Name),
		}
	})
}

// MoveResolver always succeeds; positioning is left to the host.
func MoveResolver() action.Resolver {
	return action.ResolverFunc(func(actor, _ *character.Character) action.Result {
		return action.Result{Success: true, Message: fmt.Sprintf("%s repositions", actor.Name)}
	})
}

// UseItemPrefix starts the action ID of every consumable use.
const UseItemPrefix = "use_"

// UseItemActionID returns the action ID for using itemID.
func UseItemActionID(itemID string) string { return UseItemPrefix + itemID }

// UseItemAction returns the utility action descriptor for a consumable.
func UseItemAction(it inventory.Item) action.Action {
	return action.Action{
		ID:          UseItemActionID(it.ID),
		Name:        "Use " + it.Name,
		Description: it.Description,
		Type:        action.TypeUtility,
		APCost:      action.DefaultCosts()[action.TypeUtility],
	}
}

// UseItemResolver consumes one itemID from the actor's inventory and applies
// its heal, mana and ap effects to the target, or to the actor when target is nil.
func UseItemResolver(itemID string) action.Resolver {
	return action.ResolverFunc(func(actor, target *character.Character) action.Result {
		recipient := target
		if recipient == nil {
			recipient = actor
		}
		var item inventory.Item
		for _, s := range actor.Inventory.Slots() {
			if s.Quantity > 0 && s.Item.ID == itemID {
				item = s.Item
				break
			}
		}
		if item.ID == "" {
			return action.Fail("%s has no %s", actor.Name, itemID)
		}
		if item.Type != inventory.TypeConsumable {
			return action.Fail("%s cannot be used", item.Name)
		}
		actor.Inventory.RemoveItem(itemID, 1)
		recipient.Heal(item.Effects["heal"])
		recipient.RestoreMana(item.Effects["mana"])
		recipient.AdjustActionPoints(item.Effects["ap"])
		return action.Result{
			Success: true,
			Message: fmt.Sprintf("%s uses %s on %s", actor.Name, item.Name, recipient.Name),
		}
	})
}

// RegisterConsumables adds a use action for every consumable in items.
func RegisterConsumables(c *action.Catalog, items []inventory.Item) error {
	for _, it := range items {
		if it.Type != inventory.TypeConsumable {
			continue
		}
		if err := c.Register(UseItemAction(it), UseItemResolver(it.ID)); err != nil {
			return err
		}
	}
	return nil
}
