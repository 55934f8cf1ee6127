// Package magic implements spells, per-caster spell books with mana and
// cooldown gating, and the built-in spell behaviours.
package magic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/character"
)

// Spell is a castable spell. CurrentCooldown is engine state; Cooldown is the
// fixed number of rounds applied after each cast.
type Spell struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	Category        string `yaml:"category" json:"category"`
	ManaCost        int    `yaml:"mana_cost" json:"mana_cost"`
	Cooldown        int    `yaml:"cooldown" json:"cooldown"`
	CurrentCooldown int    `yaml:"-" json:"current_cooldown"`
	Level           int    `yaml:"level" json:"level"`
	// Targeted spells refuse to cast without a target.
	Targeted bool `yaml:"targeted" json:"targeted"`
}

// Validate checks the spell's static invariants.
func (s Spell) Validate() error {
	var errs []string
	if s.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if s.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if s.ManaCost < 0 {
		errs = append(errs, fmt.Sprintf("mana_cost must be >= 0, got %d", s.ManaCost))
	}
	if s.Cooldown < 0 {
		errs = append(errs, fmt.Sprintf("cooldown must be >= 0, got %d", s.Cooldown))
	}
	if s.Level < 1 {
		errs = append(errs, fmt.Sprintf("level must be >= 1, got %d", s.Level))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Behavior is the effect of casting a spell. target may be nil for
// untargeted spells.
type Behavior interface {
	Cast(caster, target *character.Character, s Spell) action.Result
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(caster, target *character.Character, s Spell) action.Result

// Cast calls f.
func (f BehaviorFunc) Cast(caster, target *character.Character, s Spell) action.Result {
	return f(caster, target, s)
}

// Behaviors maps spell IDs to their cast behaviour.
type Behaviors struct {
	byID map[string]Behavior
}

// NewBehaviors returns an empty table.
func NewBehaviors() *Behaviors {
	return &Behaviors{byID: make(map[string]Behavior)}
}

// Register attaches b to spellID.
//
// Postcondition: returns an error if spellID is empty or already registered.
func (t *Behaviors) Register(spellID string, b Behavior) error {
	if spellID == "" {
		return errors.New("magic: spell id must not be empty")
	}
	if _, exists := t.byID[spellID]; exists {
		return fmt.Errorf("magic: behavior for spell %q already registered", spellID)
	}
	t.byID[spellID] = b
	return nil
}

// Get returns the behaviour for spellID.
func (t *Behaviors) Get(spellID string) (Behavior, bool) {
	b, ok := t.byID[spellID]
	return b, ok
}
