// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/registrar/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db    *sql.DB
	quota int64
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithQuota sets the store quota in characters. Zero disables the check.
func WithQuota(quota int64) Option {
	return func(s *SQLiteStore) { s.quota = quota }
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts ...Option) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; also keeps ":memory:" on a single database.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db, quota: storage.DefaultQuota}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetItem retrieves the value stored under key.
func (s *SQLiteStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM local_storage WHERE key = ?",
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item %q: %w", key, err)
	}
	return value, true, nil
}

// SetItem writes value under key, enforcing the quota.
// The size check and the write share one transaction.
func (s *SQLiteStore) SetItem(ctx context.Context, key, value string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if s.quota > 0 {
		var used int64
		err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0) FROM local_storage WHERE key != ?",
			key,
		).Scan(&used)
		if err != nil {
			return fmt.Errorf("failed to measure storage usage: %w", err)
		}
		if err := storage.CheckQuota(s.quota, used, key, value); err != nil {
			return fmt.Errorf("failed to set item %q: %w", key, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set item %q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveItem deletes key if present.
func (s *SQLiteStore) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM local_storage WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to remove item %q: %w", key, err)
	}
	return nil
}
