// Package skirmish loads game content and runs computer-controlled
// encounters between sides of characters until one side is left standing.
package skirmish

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/config"
	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/ai"
	"github.com/cory-johannsen/mechanics/internal/game/combat"
	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/dice"
	"github.com/cory-johannsen/mechanics/internal/game/inventory"
	"github.com/cory-johannsen/mechanics/internal/game/magic"
	"github.com/cory-johannsen/mechanics/internal/scripting"
)

// Content is the loaded rule content shared by every skirmish.
type Content struct {
	Items          *inventory.Registry
	Conditions     *condition.Registry
	Behaviors      *condition.Behaviors
	Catalog        *action.Catalog
	Spells         map[string]magic.Spell
	SpellBehaviors *magic.Behaviors
	Books          *magic.Books
	Planners       *ai.Registry
	// Scripts is nil when no script directory is configured.
	Scripts *scripting.Manager
}

// Close releases the Lua VM, if any.
func (c *Content) Close() {
	if c.Scripts != nil {
		c.Scripts.Close()
	}
}

// LoadContent reads every configured content directory. An empty directory
// setting keeps the built-in content for that concern. roller may be nil,
// which disables weapon dice, critical hits and engine.roll in scripts.
//
// Postcondition: Returns fully wired Content or the first loading error.
func LoadContent(cfg config.Config, roller *dice.Roller, logger *zap.Logger) (*Content, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	dirs := cfg.Content
	c := &Content{
		Items:          inventory.NewRegistry(),
		Conditions:     condition.DefaultRegistry(),
		Behaviors:      condition.NewBehaviors(),
		Catalog:        combat.DefaultCatalog(roller),
		Spells:         make(map[string]magic.Spell),
		SpellBehaviors: magic.NewBehaviors(),
		Books:          magic.NewBooks(),
		Planners:       ai.NewRegistry(),
	}

	if dirs.ItemsDir != "" {
		start := time.Now()
		items, err := inventory.LoadItems(dirs.ItemsDir)
		if err != nil {
			return nil, fmt.Errorf("loading items: %w", err)
		}
		if c.Items, err = inventory.NewRegistryFrom(items); err != nil {
			return nil, fmt.Errorf("registering items: %w", err)
		}
		logger.Info("loaded item definitions", zap.Int("count", len(items)), zap.Duration("elapsed", time.Since(start)))
	}
	if err := combat.RegisterConsumables(c.Catalog, c.Items.All()); err != nil {
		return nil, fmt.Errorf("registering consumables: %w", err)
	}

	if dirs.ScriptsDir != "" {
		c.Scripts = scripting.NewManager(cfg.Scripting.InstructionLimit, roller, logger)
		if err := c.Scripts.LoadDir(dirs.ScriptsDir); err != nil {
			c.Close()
			return nil, err
		}
		if err := c.Scripts.RegisterBehaviors(c.Behaviors); err != nil {
			c.Close()
			return nil, err
		}
		logger.Info("loaded scripts", zap.Strings("behaviors", c.Scripts.Behaviors()))
	}

	if err := c.load(dirs, roller, logger); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Content) load(dirs config.ContentConfig, roller *dice.Roller, logger *zap.Logger) error {
	if dirs.ConditionsDir != "" {
		reg, err := condition.LoadDirectory(dirs.ConditionsDir)
		if err != nil {
			return fmt.Errorf("loading conditions: %w", err)
		}
		c.Conditions = reg
	}
	if err := c.Conditions.Validate(c.Behaviors); err != nil {
		return fmt.Errorf("validating conditions: %w", err)
	}
	logger.Info("loaded condition definitions", zap.Int("count", len(c.Conditions.All())))

	if dirs.ActionsDir != "" {
		actions, err := action.LoadActions(dirs.ActionsDir)
		if err != nil {
			return fmt.Errorf("loading actions: %w", err)
		}
		for _, a := range actions {
			if err := c.Catalog.Register(a, builtinResolver(a.Type, roller)); err != nil {
				return fmt.Errorf("registering action: %w", err)
			}
		}
		logger.Info("loaded action definitions", zap.Int("count", len(actions)))
	}

	if dirs.SpellsDir != "" {
		spells, behaviors, err := magic.LoadSpells(dirs.SpellsDir, c.Conditions)
		if err != nil {
			return fmt.Errorf("loading spells: %w", err)
		}
		c.SpellBehaviors = behaviors
		for _, s := range spells {
			c.Spells[s.ID] = s
		}
		if err := magic.RegisterSpells(c.Catalog, c.Books, spells); err != nil {
			return fmt.Errorf("registering spells: %w", err)
		}
		logger.Info("loaded spell definitions", zap.Int("count", len(spells)))
	}

	var caller ai.ScriptCaller
	if c.Scripts != nil {
		caller = c.Scripts
	}
	if dirs.AIDir != "" {
		domains, err := ai.LoadDomains(dirs.AIDir)
		if err != nil {
			return err
		}
		for _, d := range domains {
			if err := c.Planners.Register(d, caller); err != nil {
				return err
			}
		}
		logger.Info("loaded tactics domains", zap.Int("count", len(domains)))
	}
	if _, ok := c.Planners.PlannerFor(DefaultTactics); !ok {
		if err := c.Planners.Register(ai.DefaultDomain(), caller); err != nil {
			return err
		}
	}
	return nil
}

// builtinResolver returns the standard resolver for content actions of
// type t; utility and spell actions from content have none.
func builtinResolver(t action.Type, roller *dice.Roller) action.Resolver {
	switch t {
	case action.TypeAttack:
		return combat.AttackResolver(roller)
	case action.TypeDefend:
		return combat.DefendResolver()
	case action.TypeMove:
		return combat.MoveResolver()
	}
	return nil
}
