// Package main runs a computer-controlled skirmish between the sides of a
// roster file and prints the result.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/config"
	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/combat"
	"github.com/cory-johannsen/mechanics/internal/game/currency"
	"github.com/cory-johannsen/mechanics/internal/game/dice"
	"github.com/cory-johannsen/mechanics/internal/observability"
	"github.com/cory-johannsen/mechanics/internal/skirmish"
	"github.com/cory-johannsen/mechanics/internal/storage/postgres"
)

func main() {
	start := time.Now()

	envFile := flag.String("env", ".env", "optional dotenv file loaded before configuration")
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and environment only")
	rosterPath := flag.String("roster", "content/skirmish.yaml", "path to the roster YAML file")
	seed := flag.Int64("seed", 0, "dice seed for a reproducible skirmish; 0 = crypto/rand")
	maxRounds := flag.Int("max-rounds", skirmish.DefaultMaxRounds, "rounds before the skirmish is declared a draw")
	xpPerDefeat := flag.Int("xp", 250, "experience each survivor gains per fallen enemy")
	persist := flag.Bool("persist", false, "save survivors to PostgreSQL")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("loading %s: %v", *envFile, err)
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "skirmish")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, options{
		roster:      *rosterPath,
		seed:        *seed,
		maxRounds:   *maxRounds,
		xpPerDefeat: *xpPerDefeat,
		persist:     *persist,
	}); err != nil {
		logger.Fatal("skirmish failed", zap.Error(err))
	}
	logger.Info("skirmish complete", zap.Duration("elapsed", time.Since(start)))
}

type options struct {
	roster      string
	seed        int64
	maxRounds   int
	xpPerDefeat int
	persist     bool
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, opts options) error {
	src := dice.NewCryptoSource()
	if opts.seed != 0 {
		src = dice.NewSeededSource(opts.seed)
	}
	roller := dice.NewRoller(src, logger)

	content, err := skirmish.LoadContent(cfg, roller, logger)
	if err != nil {
		return err
	}
	defer content.Close()

	roster, err := skirmish.LoadRoster(opts.roster)
	if err != nil {
		return err
	}
	factory := character.NewFactory()
	factory.Curve = cfg.Rules.Curve()
	factory.InventorySize = cfg.Rules.InventorySlots
	factory.MaxWeight = cfg.Rules.InventoryMaxWeight
	combatants, err := content.Build(roster, factory)
	if err != nil {
		return err
	}

	runner := skirmish.NewRunner(combat.NewEngine(logger), content, cfg.Rules.Economy(), logger)
	runner.MaxRounds = opts.maxRounds
	out, err := runner.Run(ctx, uuid.NewString(), combatants)
	if err != nil {
		return err
	}
	awards := skirmish.AwardSpoils(out, combatants, opts.xpPerDefeat)
	report(out, combatants, awards)

	if !opts.persist || len(out.Survivors) == 0 {
		return nil
	}
	store, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	repo := store.Characters()
	for _, c := range out.Survivors {
		if err := repo.Save(ctx, c.Snapshot()); err != nil {
			return err
		}
		logger.Info("saved character", zap.String("id", c.ID), zap.String("name", c.Name), zap.Int("level", c.Level))
	}
	return nil
}

func report(out skirmish.Outcome, combatants []skirmish.Combatant, awards []skirmish.Award) {
	if out.Winner == "" {
		fmt.Printf("Draw after %d rounds (%d turns)\n", out.Rounds, out.Turns)
	} else {
		fmt.Printf("%s win after %d rounds (%d turns)\n", out.Winner, out.Rounds, out.Turns)
	}
	for _, c := range combatants {
		ch := c.Character
		status := "down"
		if ch.IsAlive() {
			status = fmt.Sprintf("%d/%d HP", ch.Stats.HP, ch.Stats.MaxHP)
		}
		fmt.Printf("  %-8s %-10s L%-2d %-12s %s\n", c.Side, ch.Name, ch.Level, status, currency.Format(ch.Purse))
	}
	for _, a := range awards {
		line := fmt.Sprintf("  %s gains %d XP and %d copper", a.Character.Name, a.Experience, a.Copper)
		if a.LevelledUp {
			line += fmt.Sprintf(", reaching level %d", a.Character.Level)
		}
		fmt.Println(line)
	}
}
