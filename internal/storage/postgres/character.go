package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/mechanics/internal/game/character"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// CharacterRepository persists character snapshots as JSONB documents.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Save inserts s or replaces the stored snapshot with the same ID.
//
// Precondition: s.ID and s.Name must be non-empty.
// Postcondition: The stored row reflects s, or a non-nil error is returned.
func (r *CharacterRepository) Save(ctx context.Context, s character.Snapshot) error {
	if s.ID == "" || s.Name == "" {
		return fmt.Errorf("saving character: id and name must be non-empty")
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding character %q: %w", s.ID, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO characters (id, name, level, snapshot)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    level = EXCLUDED.level,
		    snapshot = EXCLUDED.snapshot,
		    updated_at = NOW()`,
		s.ID, s.Name, s.Level, doc,
	)
	if err != nil {
		return fmt.Errorf("saving character %q: %w", s.ID, err)
	}
	return nil
}

// Load returns the snapshot stored under id.
//
// Postcondition: Returns ErrCharacterNotFound if no row matches.
func (r *CharacterRepository) Load(ctx context.Context, id string) (character.Snapshot, error) {
	var doc []byte
	err := r.db.QueryRow(ctx, `SELECT snapshot FROM characters WHERE id = $1`, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return character.Snapshot{}, ErrCharacterNotFound
		}
		return character.Snapshot{}, fmt.Errorf("loading character %q: %w", id, err)
	}
	var s character.Snapshot
	if err := json.Unmarshal(doc, &s); err != nil {
		return character.Snapshot{}, fmt.Errorf("decoding character %q: %w", id, err)
	}
	return s, nil
}

// List returns every stored snapshot ordered by name.
func (r *CharacterRepository) List(ctx context.Context) ([]character.Snapshot, error) {
	rows, err := r.db.Query(ctx, `SELECT snapshot FROM characters ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var out []character.Snapshot
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		var s character.Snapshot
		if err := json.Unmarshal(doc, &s); err != nil {
			return nil, fmt.Errorf("decoding character: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}
	return out, nil
}

// Delete removes the character stored under id.
//
// Postcondition: Returns ErrCharacterNotFound if no row matched.
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}
