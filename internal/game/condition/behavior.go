package condition

import (
	"fmt"

	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

// Built-in behaviour names.
const (
	BehaviorHeal        = "heal"
	BehaviorDamage      = "damage"
	BehaviorRestoreMana = "restore_mana"
	BehaviorGrantAP     = "grant_ap"
	BehaviorDrainAP     = "drain_ap"
	BehaviorRestoreAP   = "restore_ap"
)

// Target is what an effect acts on.
type Target interface {
	TakeDamage(amount int)
	Heal(amount int)
	RestoreMana(amount int)
	// AdjustActionPoints adds delta, clamped to [0, MaxActionPoints].
	AdjustActionPoints(delta int)
	DerivedStats() stats.Derived
}

// Behavior is the code run for an effect on tick or expiry.
type Behavior interface {
	Apply(t Target, e Effect)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(t Target, e Effect)

// Apply calls f.
func (f BehaviorFunc) Apply(t Target, e Effect) { f(t, e) }

// Behaviors maps behaviour names to implementations.
type Behaviors struct {
	byName map[string]Behavior
}

// NewBehaviors returns a table holding the built-in behaviours.
func NewBehaviors() *Behaviors {
	b := &Behaviors{byName: make(map[string]Behavior)}
	b.byName[BehaviorHeal] = BehaviorFunc(func(t Target, e Effect) { t.Heal(e.Magnitude) })
	b.byName[BehaviorDamage] = BehaviorFunc(func(t Target, e Effect) { t.TakeDamage(e.Magnitude) })
	b.byName[BehaviorRestoreMana] = BehaviorFunc(func(t Target, e Effect) { t.RestoreMana(e.Magnitude) })
	b.byName[BehaviorGrantAP] = BehaviorFunc(func(t Target, e Effect) { t.AdjustActionPoints(e.Magnitude) })
	// drain_ap with no magnitude empties the pool.
	b.byName[BehaviorDrainAP] = BehaviorFunc(func(t Target, e Effect) {
		amount := e.Magnitude
		if amount <= 0 {
			amount = t.DerivedStats().ActionPoints
		}
		t.AdjustActionPoints(-amount)
	})
	b.byName[BehaviorRestoreAP] = BehaviorFunc(func(t Target, e Effect) {
		d := t.DerivedStats()
		t.AdjustActionPoints(d.MaxActionPoints - d.ActionPoints)
	})
	return b
}

// Register adds a named behaviour.
//
// Postcondition: returns an error if name is empty or already registered.
func (b *Behaviors) Register(name string, bh Behavior) error {
	if name == "" {
		return fmt.Errorf("condition: behavior name must not be empty")
	}
	if _, exists := b.byName[name]; exists {
		return fmt.Errorf("condition: behavior %q already registered", name)
	}
	b.byName[name] = bh
	return nil
}

// Get returns the behaviour registered under name.
func (b *Behaviors) Get(name string) (Behavior, bool) {
	bh, ok := b.byName[name]
	return bh, ok
}

func (b *Behaviors) run(name string, t Target, e Effect) {
	if name == "" || b == nil {
		return
	}
	if bh, ok := b.byName[name]; ok {
		bh.Apply(t, e)
	}
}
