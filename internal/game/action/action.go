// Package action defines action descriptors, the resolver strategy that
// gives them behaviour, and the action-point economy that gates them.
package action

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/mechanics/internal/game/character"
)

// Type classifies an action for action-point costing.
type Type string

const (
	TypeAttack  Type = "attack"
	TypeDefend  Type = "defend"
	TypeMove    Type = "move"
	TypeUtility Type = "utility"
	TypeSpell   Type = "spell"
)

// Types lists every valid Type in display order.
var Types = []Type{TypeAttack, TypeDefend, TypeMove, TypeUtility, TypeSpell}

// Valid reports whether t is one of Types.
func (t Type) Valid() bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

// Action is a stateless action descriptor. Behaviour is supplied by the
// Resolver registered under the same ID in a Catalog.
type Action struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description,omitempty"`
	Type        Type   `yaml:"type" json:"type"`
	// APCost is the declared cost. Combat charges by Type through Economy,
	// so this field is informational.
	APCost int `yaml:"ap_cost" json:"ap_cost"`
}

// Validate checks the descriptor's static invariants.
func (a Action) Validate() error {
	var errs []string
	if a.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if a.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if !a.Type.Valid() {
		errs = append(errs, fmt.Sprintf("type %q is not valid", a.Type))
	}
	if a.APCost < 0 {
		errs = append(errs, fmt.Sprintf("ap_cost must be >= 0, got %d", a.APCost))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Result is the outcome of resolving an action or casting a spell.
// Success false is a rule violation, not an error; Message explains it.
type Result struct {
	Success bool     `json:"success"`
	Damage  int      `json:"damage,omitempty"`
	Effects []string `json:"effects,omitempty"`
	Message string   `json:"message"`
}

// Fail returns an unsuccessful Result with a formatted message.
func Fail(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// Resolver carries out an action. target may be nil.
type Resolver interface {
	Resolve(actor, target *character.Character) Result
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(actor, target *character.Character) Result

// Resolve calls f.
func (f ResolverFunc) Resolve(actor, target *character.Character) Result {
	return f(actor, target)
}
