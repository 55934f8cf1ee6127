// Package config provides Viper-based configuration loading for the
// mechanics engine and its binaries.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/mechanics/internal/game/action"
	"github.com/cory-johannsen/mechanics/internal/game/progression"
)

// EnvPrefix prefixes every environment override, e.g. RPG_LOGGING_LEVEL.
const EnvPrefix = "RPG"

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path; empty uses stderr.
	Output string `mapstructure:"output"`
}

// RulesConfig tunes the game rules.
type RulesConfig struct {
	// ActionCosts overrides entries of the default action-point cost table.
	ActionCosts        map[string]int `mapstructure:"action_costs"`
	XPBase             float64        `mapstructure:"xp_base"`
	XPExponent         float64        `mapstructure:"xp_exponent"`
	InventorySlots     int            `mapstructure:"inventory_slots"`
	InventoryMaxWeight float64        `mapstructure:"inventory_max_weight"`
}

// Economy returns the action-point cost table with overrides applied.
func (r RulesConfig) Economy() action.Economy {
	overrides := make(map[action.Type]int, len(r.ActionCosts))
	for t, c := range r.ActionCosts {
		overrides[action.Type(t)] = c
	}
	return action.NewEconomy(overrides)
}

// Curve returns the experience curve.
func (r RulesConfig) Curve() progression.Curve {
	return progression.Curve{Base: r.XPBase, Exponent: r.XPExponent}
}

// ContentConfig locates the YAML and Lua content directories. An empty
// directory means the built-in content only.
type ContentConfig struct {
	ItemsDir      string `mapstructure:"items_dir"`
	ConditionsDir string `mapstructure:"conditions_dir"`
	SpellsDir     string `mapstructure:"spells_dir"`
	ActionsDir    string `mapstructure:"actions_dir"`
	ScriptsDir    string `mapstructure:"scripts_dir"`
	// AIDir holds HTN tactics domains for computer-controlled characters.
	AIDir string `mapstructure:"ai_dir"`
}

// ScriptingConfig holds Lua sandbox settings.
type ScriptingConfig struct {
	// InstructionLimit caps the opcodes of each Lua call; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateDatabase(c.Database),
		validateLogging(c.Logging),
		validateRules(c.Rules),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		errs = append(errs, fmt.Sprintf("database.min_conns must be in [0, max_conns], got %d", d.MinConns))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateRules(r RulesConfig) error {
	var errs []string
	for t, c := range r.ActionCosts {
		if !action.Type(t).Valid() {
			errs = append(errs, fmt.Sprintf("rules.action_costs: unknown action type %q", t))
		}
		if c < 0 {
			errs = append(errs, fmt.Sprintf("rules.action_costs.%s must be >= 0, got %d", t, c))
		}
	}
	if r.XPBase <= 0 {
		errs = append(errs, fmt.Sprintf("rules.xp_base must be > 0, got %v", r.XPBase))
	}
	if r.XPExponent <= 0 {
		errs = append(errs, fmt.Sprintf("rules.xp_exponent must be > 0, got %v", r.XPExponent))
	}
	if r.InventorySlots < 1 {
		errs = append(errs, fmt.Sprintf("rules.inventory_slots must be >= 1, got %d", r.InventorySlots))
	}
	if r.InventoryMaxWeight <= 0 {
		errs = append(errs, fmt.Sprintf("rules.inventory_max_weight must be > 0, got %v", r.InventoryMaxWeight))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from path, applies RPG_ environment overrides,
// and validates the result. An empty path uses defaults and the environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "rpg")
	v.SetDefault("database.password", "rpg")
	v.SetDefault("database.name", "rpg")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("rules.xp_base", progression.Default.Base)
	v.SetDefault("rules.xp_exponent", progression.Default.Exponent)
	v.SetDefault("rules.inventory_slots", 30)
	v.SetDefault("rules.inventory_max_weight", 100.0)

	v.SetDefault("content.items_dir", "content/items")
	v.SetDefault("content.conditions_dir", "content/conditions")
	v.SetDefault("content.spells_dir", "content/spells")
	v.SetDefault("content.actions_dir", "content/actions")
	v.SetDefault("content.scripts_dir", "content/scripts")
	v.SetDefault("content.ai_dir", "content/ai")

	v.SetDefault("scripting.instruction_limit", 100_000)
}
