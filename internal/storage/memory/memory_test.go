package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/registrar/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	t.Run("GetItem reports missing key", func(t *testing.T) {
		if _, ok, err := s.GetItem(ctx, "k"); err != nil || ok {
			t.Errorf("GetItem = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("SetItem replaces prior value", func(t *testing.T) {
		if err := s.SetItem(ctx, "k", "v1"); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		if err := s.SetItem(ctx, "k", "v2"); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		value, ok, err := s.GetItem(ctx, "k")
		if err != nil || !ok || value != "v2" {
			t.Errorf("GetItem = (%q, %v, %v), want (v2, true, nil)", value, ok, err)
		}
	})

	t.Run("RemoveItem is idempotent", func(t *testing.T) {
		if err := s.RemoveItem(ctx, "k"); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		if err := s.RemoveItem(ctx, "k"); err != nil {
			t.Fatalf("RemoveItem on missing key failed: %v", err)
		}
		if _, ok, _ := s.GetItem(ctx, "k"); ok {
			t.Error("Expected key to be gone")
		}
	})
}

func TestMemoryStoreQuota(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10)

	for _, kv := range [][2]string{{"a", "1234"}, {"b", "1234"}, {"a", "4321"}} {
		if err := s.SetItem(ctx, kv[0], kv[1]); err != nil {
			t.Fatalf("SetItem(%q) failed: %v", kv[0], err)
		}
	}

	if err := s.SetItem(ctx, "c", ""); !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("Expected ErrQuotaExceeded, got %v", err)
	}

	// multi-byte characters count once each
	if err := s.RemoveItem(ctx, "b"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := s.SetItem(ctx, "é", "ção!"); err != nil {
		t.Errorf("Expected 5-character entry to fit, got %v", err)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, _, err := s.GetItem(ctx, "k"); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("GetItem: expected ErrClosed, got %v", err)
	}
	if err := s.SetItem(ctx, "k", "v"); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("SetItem: expected ErrClosed, got %v", err)
	}
	if err := s.RemoveItem(ctx, "k"); !errors.Is(err, storage.ErrClosed) {
		t.Errorf("RemoveItem: expected ErrClosed, got %v", err)
	}
}
