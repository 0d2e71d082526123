// Package records persists the registry collection as a single JSON blob
// under one local-storage key.
package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/bytedance/sonic"

	"github.com/mmynk/registrar/internal/models"
	"github.com/mmynk/registrar/internal/storage"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "projetoweb_usuarios"

// ErrMalformedStorage is reported when the stored text is not a JSON array
// of records.
var ErrMalformedStorage = errors.New("malformed storage")

// Store is the load/save/clear boundary around the collection key.
// Every call reads or writes the whole collection.
type Store struct {
	kv     storage.Store
	key    string
	warned atomic.Bool
}

// NewStore creates a Store over kv using key. An empty key means DefaultKey.
func NewStore(kv storage.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

// Key returns the storage key in use.
func (s *Store) Key() string {
	return s.key
}

// LoadAll returns the persisted collection in insertion order.
// A missing key yields an empty collection. Malformed contents are treated
// as an empty collection and a warning is logged once until the next write.
func (s *Store) LoadAll(ctx context.Context) ([]models.Record, error) {
	raw, ok, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	if !ok {
		return []models.Record{}, nil
	}

	records, err := Decode(raw)
	if err != nil {
		if !s.warned.Swap(true) {
			slog.Warn("Stored records are malformed, treating as empty",
				"key", s.key,
				"bytes", len(raw),
				"error", err,
			)
		}
		return []models.Record{}, nil
	}

	return records, nil
}

// SaveAll replaces the persisted collection with records.
func (s *Store) SaveAll(ctx context.Context, records []models.Record) error {
	raw, err := Encode(records)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.key, raw); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	s.warned.Store(false)
	return nil
}

// Clear removes the collection key entirely.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.RemoveItem(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	s.warned.Store(false)
	return nil
}

// Exists reports whether the collection key is physically present.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	_, ok, err := s.kv.GetItem(ctx, s.key)
	if err != nil {
		return false, fmt.Errorf("failed to check records: %w", err)
	}
	return ok, nil
}

// Encode serializes records as a JSON array. A nil slice encodes as [].
func Encode(records []models.Record) (string, error) {
	if records == nil {
		records = []models.Record{}
	}
	b, err := sonic.ConfigStd.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a JSON array of records. Anything else, including null and
// arrays holding null, is ErrMalformedStorage.
func Decode(raw string) ([]models.Record, error) {
	if !strings.HasPrefix(strings.TrimSpace(raw), "[") {
		return nil, fmt.Errorf("%w: not an array", ErrMalformedStorage)
	}

	var items []*models.Record
	if err := sonic.ConfigStd.UnmarshalFromString(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}

	records := make([]models.Record, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: null record at index %d", ErrMalformedStorage, i)
		}
		records = append(records, *item)
	}
	return records, nil
}
