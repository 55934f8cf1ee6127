// Package postgres persists characters in PostgreSQL through pgx v5 and
// manages the schema with golang-migrate.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/mechanics/internal/config"
)

// Store owns the connection pool shared by the repositories.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// Open connects to the database described by cfg and verifies it answers a ping.
//
// Precondition: cfg must pass config.Validate.
// Postcondition: Returns a ready Store, or an error with no pool left open.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	logger.Info("database connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.Int32("max_conns", cfg.MaxConns),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &Store{pool: pool, logger: logger}, nil
}

// Characters returns a repository backed by the store's pool.
func (s *Store) Characters() *CharacterRepository {
	return NewCharacterRepository(s.pool)
}

// Ping checks the database answers within timeout.
func (s *Store) Ping(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes the underlying pool for callers that run their own SQL.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Close logs pool usage and releases every connection.
func (s *Store) Close() {
	st := s.pool.Stat()
	s.logger.Debug("database closing",
		zap.Int64("acquired", st.AcquireCount()),
		zap.Int32("total_conns", st.TotalConns()),
	)
	s.pool.Close()
}
