// Package memory provides an in-memory implementation of storage.Store,
// suitable for tests and throwaway sessions.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/registrar/internal/storage"
)

var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with a map guarded by a mutex.
type MemoryStore struct {
	mu     sync.Mutex
	items  map[string]string
	quota  int64
	closed bool
}

// NewMemoryStore returns an empty MemoryStore with the given quota.
// A quota of zero or less disables the check.
func NewMemoryStore(quota int64) *MemoryStore {
	return &MemoryStore{items: make(map[string]string), quota: quota}
}

// GetItem looks up key.
func (s *MemoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, storage.ErrClosed
	}
	value, ok := s.items[key]
	return value, ok, nil
}

// SetItem stores value under key, enforcing the quota.
func (s *MemoryStore) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}

	var used int64
	for k, v := range s.items {
		if k != key {
			used += storage.EntrySize(k, v)
		}
	}
	if err := storage.CheckQuota(s.quota, used, key, value); err != nil {
		return fmt.Errorf("failed to set item %q: %w", key, err)
	}

	s.items[key] = value
	return nil
}

// RemoveItem deletes key if present.
func (s *MemoryStore) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	delete(s.items, key)
	return nil
}

// Close marks the store closed. Further operations fail with storage.ErrClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
