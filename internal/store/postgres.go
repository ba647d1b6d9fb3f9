package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxIface is the subset of *pgxpool.Pool used by PostgresStore; pgxmock pools satisfy it too.
type PgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresStore keeps keys in the kv_store table. Every row carries a version
// that Update compares before writing.
type PostgresStore struct {
	db PgxIface
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(db PgxIface) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get retrieves the value stored under key
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	sql := `SELECT value FROM kv_store WHERE key = $1`
	err := s.db.QueryRow(ctx, sql, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes value unconditionally and bumps the row version
func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	sql := `INSERT INTO kv_store (key, value, version, updated_at) VALUES ($1, $2, 1, NOW())
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, version = kv_store.version + 1, updated_at = NOW()`
	if _, err := s.db.Exec(ctx, sql, key, value); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Remove deletes key; removing an absent key is not an error
func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	sql := `DELETE FROM kv_store WHERE key = $1`
	if _, err := s.db.Exec(ctx, sql, key); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

// Update reads the value and its version, applies fn and writes back only if the
// version is unchanged. A lost race yields ErrConflict.
func (s *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	var current string
	var version int64
	exists := true
	sql := `SELECT value, version FROM kv_store WHERE key = $1`
	err := s.db.QueryRow(ctx, sql, key).Scan(&current, &version)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to read key %q for update: %w", key, err)
		}
		exists = false
	}

	next, err := fn(current, exists)
	if err != nil {
		return err
	}

	var cmdTag pgconn.CommandTag
	if exists {
		sql = `UPDATE kv_store SET value = $1, version = version + 1, updated_at = NOW()
               WHERE key = $2 AND version = $3`
		cmdTag, err = s.db.Exec(ctx, sql, next, key, version)
	} else {
		sql = `INSERT INTO kv_store (key, value, version, updated_at) VALUES ($1, $2, 1, NOW())
               ON CONFLICT (key) DO NOTHING`
		cmdTag, err = s.db.Exec(ctx, sql, key, next)
	}
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
