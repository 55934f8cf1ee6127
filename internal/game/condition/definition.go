// Package condition implements timed status effects (buffs and debuffs).
//
// Effects are plain data. Their per-tick and on-expiry behaviour is looked up
// by name in a Behaviors table, so effects can be persisted and reloaded
// without carrying code.
package condition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind classifies an effect as helpful or harmful.
type Kind string

const (
	Beneficial  Kind = "beneficial"
	Detrimental Kind = "detrimental"
)

// Effect is one timed status effect.
type Effect struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description,omitempty"`
	Kind        Kind   `yaml:"kind" json:"kind"`
	// Duration is the number of ticks remaining.
	Duration int `yaml:"duration" json:"duration"`
	// Magnitude is the numeric parameter fixed at creation (heal or damage amount, bonus AP).
	Magnitude int `yaml:"magnitude" json:"magnitude"`
	// OnTick names the Behavior run once per tick.
	OnTick string `yaml:"on_tick" json:"on_tick,omitempty"`
	// OnExpire names the Behavior run when Duration reaches zero; empty for none.
	OnExpire string `yaml:"on_expire" json:"on_expire,omitempty"`
}

// Validate checks the effect's static invariants.
func (e Effect) Validate() error {
	var errs []string
	if e.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if e.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if e.Kind != Beneficial && e.Kind != Detrimental {
		errs = append(errs, fmt.Sprintf("kind must be beneficial or detrimental, got %q", e.Kind))
	}
	if e.Duration < 1 {
		errs = append(errs, fmt.Sprintf("duration must be >= 1, got %d", e.Duration))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Haste grants bonus action points every tick.
func Haste(duration, bonusAP int) Effect {
	return Effect{
		ID: "haste", Name: "Haste", Kind: Beneficial,
		Description: "Moves with unnatural speed.",
		Duration:    duration, Magnitude: bonusAP, OnTick: BehaviorGrantAP,
	}
}

// Regeneration heals amount hit points every tick.
func Regeneration(duration, amount int) Effect {
	return Effect{
		ID: "regeneration", Name: "Regeneration", Kind: Beneficial,
		Description: "Wounds close on their own.",
		Duration:    duration, Magnitude: amount, OnTick: BehaviorHeal,
	}
}

// Poison deals amount damage every tick.
func Poison(duration, amount int) Effect {
	return Effect{
		ID: "poison", Name: "Poison", Kind: Detrimental,
		Description: "Venom burns through the veins.",
		Duration:    duration, Magnitude: amount, OnTick: BehaviorDamage,
	}
}

// Paralysis drains all action points every tick and restores them on expiry.
func Paralysis(duration int) Effect {
	return Effect{
		ID: "paralysis", Name: "Paralysis", Kind: Detrimental,
		Description: "Unable to move or act.",
		Duration:    duration, OnTick: BehaviorDrainAP, OnExpire: BehaviorRestoreAP,
	}
}

// Registry holds effect templates keyed by ID.
type Registry struct {
	defs map[string]Effect
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Effect)}
}

// DefaultRegistry returns a Registry holding the built-in effects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range []Effect{Haste(3, 2), Regeneration(5, 10), Poison(3, 5), Paralysis(1)} {
		r.Register(e)
	}
	return r
}

// Register adds e to the registry, overwriting any existing entry with the same ID.
// Precondition: e.ID must not be empty.
func (r *Registry) Register(e Effect) {
	r.defs[e.ID] = e
}

// Get returns a copy of the template for id.
func (r *Registry) Get(id string) (Effect, bool) {
	e, ok := r.defs[id]
	return e, ok
}

// All returns every template ordered by ID.
func (r *Registry) All() []Effect {
	out := make([]Effect, 0, len(r.defs))
	for _, e := range r.defs {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Validate reports every template whose OnTick or OnExpire names a behaviour
// missing from b.
func (r *Registry) Validate(b *Behaviors) error {
	var errs []string
	for _, e := range r.All() {
		for _, name := range []string{e.OnTick, e.OnExpire} {
			if name == "" {
				continue
			}
			if _, ok := b.Get(name); !ok {
				errs = append(errs, fmt.Sprintf("effect %q: unknown behavior %q", e.ID, name))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("condition registry: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadDirectory reads every *.yaml and *.yml file in dir, parses each as an Effect,
// and registers it on top of the built-in effects.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := DefaultRegistry()
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Effect
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(def)
	}
	return reg, nil
}
