// Package inventory provides item templates, the item catalogue loader, and
// the slot-based character inventory with weight, stacking, equipment and
// hotbar rules.
package inventory

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Type classifies an item.
type Type string

const (
	TypeWeapon     Type = "weapon"
	TypeArmor      Type = "armor"
	TypeAccessory  Type = "accessory"
	TypeConsumable Type = "consumable"
	TypeMaterial   Type = "material"
)

// DefaultMaxStack is the stack limit used when an item leaves MaxStack unset.
const DefaultMaxStack = 99

// validTypes is the set of valid item types.
var validTypes = map[Type]bool{
	TypeWeapon:     true,
	TypeArmor:      true,
	TypeAccessory:  true,
	TypeConsumable: true,
	TypeMaterial:   true,
}

// Equippable reports whether items of this type occupy an equipment slot.
func (t Type) Equippable() bool {
	return t == TypeWeapon || t == TypeArmor || t == TypeAccessory
}

// Item is an immutable item template. Inventory slots hold copies.
type Item struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description" json:"description,omitempty"`
	Type        Type           `yaml:"type" json:"type"`
	Weight      float64        `yaml:"weight" json:"weight"`
	Value       int            `yaml:"value" json:"value"`
	Stackable   bool           `yaml:"stackable" json:"stackable"`
	MaxStack    int            `yaml:"max_stack" json:"max_stack,omitempty"`
	Effects     map[string]int `yaml:"effects" json:"effects,omitempty"` // e.g. heal: 20, mana: 10
	DamageDice  string         `yaml:"damage_dice" json:"damage_dice,omitempty"`
}

// StackLimit returns MaxStack, or DefaultMaxStack when unset.
func (i Item) StackLimit() int {
	if i.MaxStack > 0 {
		return i.MaxStack
	}
	return DefaultMaxStack
}

// clone returns a copy of i that shares no mutable state with it.
func (i Item) clone() Item {
	if i.Effects != nil {
		fx := make(map[string]int, len(i.Effects))
		for k, v := range i.Effects {
			fx[k] = v
		}
		i.Effects = fx
	}
	return i
}

// Validate checks that the Item satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (i *Item) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if i.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validTypes[i.Type] {
		errs = append(errs, fmt.Errorf("Type must be one of weapon, armor, accessory, consumable, material; got %q", i.Type))
	}
	if i.Weight < 0 {
		errs = append(errs, errors.New("Weight must be >= 0"))
	}
	if i.MaxStack < 0 {
		errs = append(errs, errors.New("MaxStack must be >= 0"))
	}
	if !i.Stackable && i.MaxStack > 1 {
		errs = append(errs, errors.New("MaxStack requires Stackable"))
	}
	if i.DamageDice != "" && i.Type != TypeWeapon {
		errs = append(errs, errors.New("DamageDice is only valid for weapons"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as an
// Item, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Items or the first encountered error.
func LoadItems(dir string) ([]*Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*Item
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		var it Item
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&it); err != nil {
			return nil, fmt.Errorf("LoadItems: cannot parse file %q: %w", path, err)
		}
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, &it)
	}
	return items, nil
}
