// Package storage provides abstractions for persistent key-value storage.
package storage

import (
	"context"
	"errors"
	"unicode/utf8"
)

// DefaultQuota is the per-store size limit, in characters, applied when none
// is configured. It matches the common browser local-storage allowance.
const DefaultQuota = 5 * 1024 * 1024

var (
	// ErrQuotaExceeded is returned by SetItem when the write would push the
	// store past its quota. The previous value is left in place.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("storage closed")
)

// Store defines the interface for local key-value storage operations.
// Values are opaque text. This abstraction allows swapping storage backends
// (SQLite, in-memory) without changing the records layer.
type Store interface {
	// GetItem returns the value stored under key.
	// ok is false if the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any prior value.
	// Returns ErrQuotaExceeded if the store would grow past its quota.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// EntrySize returns the size charged against the quota for one entry.
func EntrySize(key, value string) int64 {
	return int64(utf8.RuneCountInString(key) + utf8.RuneCountInString(value))
}

// CheckQuota reports ErrQuotaExceeded when used plus the incoming entry
// exceeds quota. A quota of zero or less disables the check.
func CheckQuota(quota, used int64, key, value string) error {
	if quota <= 0 {
		return nil
	}
	if used+EntrySize(key, value) > quota {
		return ErrQuotaExceeded
	}
	return nil
}
