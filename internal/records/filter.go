package records

import (
	"strings"

	"github.com/mmynk/registrar/internal/models"
)

// Filter returns the records whose name or email contains term,
// case-insensitively. An empty term matches everything.
// The input slice is not modified.
func Filter(records []models.Record, term string) []models.Record {
	term = strings.ToLower(term)
	matched := make([]models.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), term) ||
			strings.Contains(strings.ToLower(r.Email), term) {
			matched = append(matched, r)
		}
	}
	return matched
}

// WithoutEmail returns the records whose email differs from email, in order,
// and how many were dropped. Every record sharing the email is dropped.
func WithoutEmail(records []models.Record, email string) ([]models.Record, int) {
	kept := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.Email != email {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}
