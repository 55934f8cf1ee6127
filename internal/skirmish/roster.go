package skirmish

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/currency"
	"github.com/cory-johannsen/mechanics/internal/game/inventory"
	"github.com/cory-johannsen/mechanics/internal/game/magic"
	"github.com/cory-johannsen/mechanics/internal/game/stats"
)

// DefaultTactics names the planner used when a member sets none.
const DefaultTactics = "default"

// ItemGrant is a starting stack of an item.
type ItemGrant struct {
	ID       string `yaml:"id"`
	Quantity int    `yaml:"quantity"`
}

// MemberSpec describes one starting character.
type MemberSpec struct {
	Name       string           `yaml:"name"`
	Attributes stats.Attributes `yaml:"attributes"`
	Tactics    string           `yaml:"tactics"`
	Spells     []string         `yaml:"spells"`
	Items      []ItemGrant      `yaml:"items"`
	// Equip lists item IDs from Items to equip after granting.
	Equip  []string `yaml:"equip"`
	Copper int      `yaml:"copper"`
}

// SideSpec is a named team.
type SideSpec struct {
	Name    string       `yaml:"name"`
	Members []MemberSpec `yaml:"members"`
}

// Roster is the on-disk description of a skirmish.
type Roster struct {
	Sides []SideSpec `yaml:"sides"`
}

// Validate checks that there are at least two non-empty, uniquely named sides.
func (r Roster) Validate() error {
	var errs []string
	if len(r.Sides) < 2 {
		errs = append(errs, fmt.Sprintf("need at least 2 sides, got %d", len(r.Sides)))
	}
	seen := make(map[string]bool)
	for i, s := range r.Sides {
		if s.Name == "" {
			errs = append(errs, fmt.Sprintf("side %d has no name", i))
		} else if seen[s.Name] {
			errs = append(errs, fmt.Sprintf("duplicate side %q", s.Name))
		}
		seen[s.Name] = true
		if len(s.Members) == 0 {
			errs = append(errs, fmt.Sprintf("side %q has no members", s.Name))
		}
		for j, m := range s.Members {
			if m.Name == "" {
				errs = append(errs, fmt.Sprintf("side %q member %d has no name", s.Name, j))
			}
			if m.Copper < 0 {
				errs = append(errs, fmt.Sprintf("member %q: copper must be >= 0", m.Name))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid roster: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadRoster reads and validates a roster file.
func LoadRoster(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Roster{}, fmt.Errorf("reading roster %q: %w", path, err)
	}
	var r Roster
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return Roster{}, fmt.Errorf("parsing roster %q: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// Combatant is a built character fighting for a side under a tactics domain.
type Combatant struct {
	Character *character.Character
	Side      string
	Tactics   string
}

// ErrUnknownTactics is returned when a member names an unregistered planner.
var ErrUnknownTactics = errors.New("unknown tactics")

// Build creates the roster's characters through f, grants their items and
// purse, and gives casters a spellbook registered in c.Books.
//
// Postcondition: Returns every combatant in roster order, or the first error.
func (c *Content) Build(r Roster, f *character.Factory) ([]Combatant, error) {
	var out []Combatant
	for _, side := range r.Sides {
		for _, m := range side.Members {
			ch, err := f.Human(m.Name, m.Attributes)
			if err != nil {
				return nil, err
			}
			if err := c.equip(ch, m); err != nil {
				return nil, err
			}
			ch.Purse = currency.FromCopper(m.Copper)
			if len(m.Spells) > 0 {
				book := magic.NewBook(c.SpellBehaviors)
				for _, id := range m.Spells {
					s, ok := c.Spells[id]
					if !ok {
						return nil, fmt.Errorf("member %q: unknown spell %q", m.Name, id)
					}
					book.Learn(s)
				}
				c.Books.Add(ch.ID, book)
			}
			tactics := m.Tactics
			if tactics == "" {
				tactics = DefaultTactics
			}
			if _, ok := c.Planners.PlannerFor(tactics); !ok {
				return nil, fmt.Errorf("member %q: %w %q (have %s)", m.Name, ErrUnknownTactics, tactics, strings.Join(c.Planners.Names(), ", "))
			}
			out = append(out, Combatant{Character: ch, Side: side.Name, Tactics: tactics})
		}
	}
	return out, nil
}

func (c *Content) equip(ch *character.Character, m MemberSpec) error {
	for _, g := range m.Items {
		it, ok := c.Items.Item(g.ID)
		if !ok {
			return fmt.Errorf("member %q: %w: %q", m.Name, inventory.ErrUnknownItem, g.ID)
		}
		qty := g.Quantity
		if qty == 0 {
			qty = 1
		}
		if !ch.Inventory.AddItem(it, qty) {
			return fmt.Errorf("member %q: cannot carry %d x %s", m.Name, qty, g.ID)
		}
	}
	for _, id := range m.Equip {
		it, ok := c.Items.Item(id)
		if !ok {
			return fmt.Errorf("member %q: %w: %q", m.Name, inventory.ErrUnknownItem, id)
		}
		if !ch.Inventory.EquipItem(it) {
			return fmt.Errorf("member %q: cannot equip %s", m.Name, id)
		}
	}
	return nil
}
