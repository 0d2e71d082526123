package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/registrar/internal/models"
)

func TestItems(t *testing.T) {
	t.Run("empty input yields placeholder", func(t *testing.T) {
		for _, recs := range [][]models.Record{nil, {}} {
			assert.Equal(t, []Item{{Placeholder: true, Text: Placeholder}}, Items(recs))
		}
	})

	t.Run("records keep order and bind delete to email", func(t *testing.T) {
		recs := []models.Record{
			{Name: "Ana", Email: "a@x.com", Timestamp: "t1"},
			{Name: "Bia", Email: "b@y.com", Timestamp: "t2"},
		}
		assert.Equal(t, []Item{
			{Timestamp: "t1", Name: "Ana", Email: "a@x.com", DeleteKey: "a@x.com"},
			{Timestamp: "t2", Name: "Bia", Email: "b@y.com", DeleteKey: "b@y.com"},
		}, Items(recs))
	})
}

func TestRenderReplacesContents(t *testing.T) {
	rec := &Recorder{}
	Render(rec, []models.Record{{Name: "Ana", Email: "a@x.com"}, {Name: "Bia", Email: "b@y.com"}})
	Render(rec, []models.Record{{Name: "Caio", Email: "c@z.com"}})

	items := rec.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "c@z.com", items[0].Email)

	// markup in a name is kept as literal text
	Render(rec, []models.Record{{Name: "<b>Ana</b>", Email: "a@x.com"}})
	assert.Equal(t, "<b>Ana</b>", rec.Items()[0].Name)
}

func TestTextView(t *testing.T) {
	var buf bytes.Buffer
	v := NewTextView(&buf)

	Render(v, []models.Record{
		{Name: "Ana", Email: "a@x.com", Timestamp: "17/10/2026, 14:03:05"},
		{Name: "Bia", Email: "b@y.com", Timestamp: "17/10/2026, 14:04:10"},
	})
	out := buf.String()
	for _, want := range []string{"1. Date: 17/10/2026, 14:03:05", "Name: Ana", "2. Date:", "E-mail: b@y.com"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	Render(v, nil)
	assert.Contains(t, buf.String(), Placeholder)
	assert.NotContains(t, buf.String(), "1.", "placeholder must not be numbered")
}
