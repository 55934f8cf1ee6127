package magic

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mechanics/internal/game/condition"
)

// Behaviour kinds accepted in spell files.
const (
	KindDamage = "damage"
	KindHeal   = "heal"
	KindEffect = "effect"
)

// spellFile is the on-disk form of a spell: the spell itself plus the
// parameters of its built-in behaviour.
type spellFile struct {
	Spell     `yaml:",inline"`
	Behavior  string `yaml:"behavior"`
	Magnitude int    `yaml:"magnitude"`
	Effect    string `yaml:"effect"`
	Self      bool   `yaml:"self"`
}

// LoadSpells reads every *.yaml and *.yml file in dir and returns the spells and a
// behaviour table built from each file's behavior fields. Effect spells
// resolve their effect ID through conditions.
//
// Precondition: dir must be a readable directory; conditions must not be nil.
// Postcondition: Returns an error on the first invalid file.
func LoadSpells(dir string, conditions *condition.Registry) ([]Spell, *Behaviors, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading spells dir %q: %w", dir, err)
	}
	var spells []Spell
	behaviors := NewBehaviors()
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var sf spellFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sf); err != nil {
			return nil, nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := sf.Spell.Validate(); err != nil {
			return nil, nil, fmt.Errorf("validating %q: %w", path, err)
		}
		b, err := sf.behavior(conditions)
		if err != nil {
			return nil, nil, fmt.Errorf("spell %q in %q: %w", sf.ID, path, err)
		}
		if err := behaviors.Register(sf.ID, b); err != nil {
			return nil, nil, fmt.Errorf("loading %q: %w", path, err)
		}
		spells = append(spells, sf.Spell)
	}
	return spells, behaviors, nil
}

func (sf spellFile) behavior(conditions *condition.Registry) (Behavior, error) {
	switch sf.Behavior {
	case KindDamage:
		return DamageSpell(sf.Magnitude), nil
	case KindHeal:
		return HealSpell(sf.Magnitude), nil
	case KindEffect:
		eff, ok := conditions.Get(sf.Effect)
		if !ok {
			return nil, fmt.Errorf("unknown effect %q", sf.Effect)
		}
		return EffectSpell(eff, sf.Self), nil
	default:
		return nil, fmt.Errorf("unknown behavior %q", sf.Behavior)
	}
}
