package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/registrar/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "registrar-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("GetItem reports missing key", func(t *testing.T) {
		value, ok, err := store.GetItem(ctx, "missing")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if ok {
			t.Errorf("Expected missing key, got value %q", value)
		}
	})

	t.Run("SetItem then GetItem", func(t *testing.T) {
		if err := store.SetItem(ctx, "k", `[{"nome":"Ana"}]`); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		value, ok, err := store.GetItem(ctx, "k")
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if !ok || value != `[{"nome":"Ana"}]` {
			t.Errorf("GetItem = (%q, %v), want stored value", value, ok)
		}
	})

	t.Run("SetItem replaces prior value", func(t *testing.T) {
		if err := store.SetItem(ctx, "k", "[]"); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		value, _, _ := store.GetItem(ctx, "k")
		if value != "[]" {
			t.Errorf("Expected replaced value, got %q", value)
		}
	})

	t.Run("Empty value is still present", func(t *testing.T) {
		if err := store.SetItem(ctx, "empty", ""); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		_, ok, _ := store.GetItem(ctx, "empty")
		if !ok {
			t.Error("Expected empty value to be present")
		}
	})

	t.Run("RemoveItem deletes the key", func(t *testing.T) {
		if err := store.RemoveItem(ctx, "k"); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		_, ok, _ := store.GetItem(ctx, "k")
		if ok {
			t.Error("Expected key to be gone")
		}
	})

	t.Run("RemoveItem on missing key is a no-op", func(t *testing.T) {
		if err := store.RemoveItem(ctx, "never-set"); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})
}

func TestSQLiteStore_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.SetItem(ctx, "k", "v"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.GetItem(ctx, "k")
	if err != nil || !ok || value != "v" {
		t.Errorf("GetItem after reopen = (%q, %v, %v), want (v, true, nil)", value, ok, err)
	}
}

func TestSQLiteStore_Quota(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "quota.db"), WithQuota(20))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"fits", "a", strings.Repeat("x", 9), false},
		{"other key fits", "b", strings.Repeat("x", 9), false},
		{"overflow", "c", "x", true},
		{"replacing counts new size only", "a", strings.Repeat("y", 9), false},
		{"replacement too large", "a", strings.Repeat("z", 11), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.SetItem(ctx, tt.key, tt.value)
			if tt.wantErr {
				if !errors.Is(err, storage.ErrQuotaExceeded) {
					t.Fatalf("Expected ErrQuotaExceeded, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetItem failed: %v", err)
			}
		})
	}

	// A rejected write leaves the old value in place.
	value, _, _ := store.GetItem(ctx, "a")
	if value != strings.Repeat("y", 9) {
		t.Errorf("Expected previous value to survive, got %q", value)
	}
	if _, ok, _ := store.GetItem(ctx, "c"); ok {
		t.Error("Expected rejected key to be absent")
	}
}

func TestSQLiteStore_Unlimited(t *testing.T) {
	store, err := New(":memory:", WithQuota(0))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	big := strings.Repeat("x", storage.DefaultQuota+1)
	if err := store.SetItem(context.Background(), "big", big); err != nil {
		t.Fatalf("Expected unlimited store to accept large value, got %v", err)
	}
}
