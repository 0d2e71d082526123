package records

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/registrar/internal/models"
	"github.com/mmynk/registrar/internal/storage"
	"github.com/mmynk/registrar/internal/storage/memory"
)

var sample = []models.Record{
	{Name: "Ana", Email: "a@x.com", Timestamp: "17/10/2026, 14:03:05"},
	{Name: "Bia", Email: "b@y.com", Timestamp: "17/10/2026, 14:04:10"},
	{Name: "Çécile", Email: "c@z.com", Timestamp: "18/10/2026, 09:00:00"},
}

func newStore(t *testing.T) (*Store, *memory.MemoryStore) {
	t.Helper()
	kv := memory.NewMemoryStore(storage.DefaultQuota)
	return NewStore(kv, ""), kv
}

func TestLoadAllMissingKey(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveAllRoundTrip(t *testing.T) {
	ctx := context.Background()

	for n := 0; n <= len(sample); n++ {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			s, _ := newStore(t)
			want := append([]models.Record{}, sample[:n]...)

			require.NoError(t, s.SaveAll(ctx, want))
			got, err := s.LoadAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSaveAllWireFormat(t *testing.T) {
	ctx := context.Background()
	s, kv := newStore(t)

	require.NoError(t, s.SaveAll(ctx, sample[:1]))
	raw, ok, err := kv.GetItem(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"nome":"Ana","email":"a@x.com","data":"17/10/2026, 14:03:05"}]`, raw)

	require.NoError(t, s.SaveAll(ctx, nil))
	raw, _, _ = kv.GetItem(ctx, DefaultKey)
	assert.Equal(t, "[]", raw)
}

func TestLoadAllMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated", `[{"nome":"Ana"`},
		{"object", `{"nome":"Ana"}`},
		{"null", `null`},
		{"null element", `[null]`},
		{"wrong field type", `[{"nome":1,"email":"a@x.com","data":""}]`},
		{"plain text", `hello`},
		{"empty", ``},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kv := newStore(t)
			require.NoError(t, kv.SetItem(ctx, DefaultKey, tt.raw))

			got, err := s.LoadAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			_, err = Decode(tt.raw)
			assert.True(t, errors.Is(err, ErrMalformedStorage), "Decode(%q) = %v", tt.raw, err)

			// the corrupt blob is left alone until the next write
			raw, ok, _ := kv.GetItem(ctx, DefaultKey)
			assert.True(t, ok)
			assert.Equal(t, tt.raw, raw)
		})
	}
}

func TestMalformedRecoveredBySave(t *testing.T) {
	ctx := context.Background()
	s, kv := newStore(t)
	require.NoError(t, kv.SetItem(ctx, DefaultKey, "garbage"))

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	all = append(all, sample[0])
	require.NoError(t, s.SaveAll(ctx, all))

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample[:1], got)
}

func TestClearRemovesKey(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.SaveAll(ctx, sample))
	exists, err := s.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Clear(ctx))
	exists, err = s.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveAllQuotaExceeded(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewMemoryStore(40)
	s := NewStore(kv, "k")

	err := s.SaveAll(ctx, sample)
	assert.ErrorIs(t, err, storage.ErrQuotaExceeded)

	exists, _ := s.Exists(ctx)
	assert.False(t, exists)
}

func TestLoadAllBackendError(t *testing.T) {
	kv := memory.NewMemoryStore(0)
	require.NoError(t, kv.Close())
	s := NewStore(kv, "")

	_, err := s.LoadAll(context.Background())
	assert.ErrorIs(t, err, storage.ErrClosed)
}

func TestCustomKey(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewMemoryStore(0)
	a := NewStore(kv, "alpha")
	b := NewStore(kv, "beta")

	require.NoError(t, a.SaveAll(ctx, sample[:1]))
	got, err := b.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "alpha", a.Key())
}
