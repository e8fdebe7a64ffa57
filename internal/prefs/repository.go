// Package prefs persists shopper preferences: quiz answers, facet panel
// state, privacy switches, advisor chat history and compare trays.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RouterHaus/routerhaus/internal/store"
)

// ErrNotFound is returned when a preference key does not exist.
var ErrNotFound = errors.New("preference not found")

// Entry represents one stored preference value.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository provides access to raw preference entries.
type Repository interface {
	// Get returns a single entry by key.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set creates or updates an entry.
	Set(ctx context.Context, key, value string) error

	// Delete removes an entry by key.
	Delete(ctx context.Context, key string) error
}

// Compile-time interface guard.
var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a Repository and runs the prefs migration.
func NewSQLiteRepository(ctx context.Context, st *store.SQLiteStore) (*SQLiteRepository, error) {
	if err := st.Migrate(ctx, "prefs", prefsMigrations); err != nil {
		return nil, fmt.Errorf("prefs migrations: %w", err)
	}
	return &SQLiteRepository{db: st.DB()}, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*Entry, error) {
	var e Entry
	err := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM prefs WHERE key = ?`, key,
	).Scan(&e.Key, &e.Value, &e.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pref %q: %w", key, err)
	}
	return &e, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prefs (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("set pref %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM prefs WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete pref %q: %w", key, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// prefsMigrations defines the database schema for the prefs table.
var prefsMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create prefs table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE prefs (
					key        TEXT PRIMARY KEY,
					value      TEXT NOT NULL,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`)
			return err
		},
	},
}
