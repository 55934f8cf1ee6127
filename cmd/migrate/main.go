// Package main applies or rolls back the PostgreSQL schema migrations.
package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/config"
	"github.com/cory-johannsen/mechanics/internal/observability"
	"github.com/cory-johannsen/mechanics/internal/storage/postgres"
)

func main() {
	start := time.Now()

	envFile := flag.String("env", ".env", "optional dotenv file loaded before configuration")
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	dir := flag.String("path", "migrations", "directory holding the migration files")
	direction := flag.String("direction", "up", "migration direction: up or down")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
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

	logger, err := observability.NewLogger(cfg.Logging, "migrate")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	res, err := postgres.Migrate(cfg.Database, *dir, postgres.Direction(*direction), *steps)
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	fields := []zap.Field{
		zap.String("direction", *direction),
		zap.Uint("version", res.Version),
		zap.Bool("dirty", res.Dirty),
		zap.Duration("elapsed", time.Since(start)),
	}
	if !res.Changed {
		logger.Info("schema already current", fields...)
		return
	}
	logger.Info("schema migrated", fields...)
}
