// Package kvstore is a small string key-value table used for serialized
// application state such as the meeting-room collection.
package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kvstore: key not found")

const schema = `
CREATE TABLE IF NOT EXISTS app_state (
	state_key   TEXT PRIMARY KEY,
	state_value TEXT NOT NULL,
	updated_at  TIMESTAMP NOT NULL
)`

type Entry struct {
	Key       string    `db:"state_key"`
	Value     string    `db:"state_value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// EnsureSchema creates the backing table when migrations have not run.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create app_state: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := s.db.Rebind(`SELECT state_value FROM app_state WHERE state_key = ?`)
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// SetMany writes every pair in one transaction.
func (s *Store) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := tx.Rebind(`
INSERT INTO app_state (state_key, state_value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (state_key) DO UPDATE SET state_value = excluded.state_value, updated_at = excluded.updated_at`)

	now := s.now().UTC()
	for k, v := range values {
		if _, err := tx.ExecContext(ctx, query, k, v, now); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM app_state WHERE state_key IN (?)`, keys)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Entries returns every stored pair ordered by key.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	var out []Entry
	if err := s.db.SelectContext(ctx, &out, `SELECT state_key, state_value, updated_at FROM app_state ORDER BY state_key`); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return out, nil
}
