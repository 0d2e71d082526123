// Package view turns record sequences into displayable list items.
package view

import (
	"github.com/mmynk/registrar/internal/models"
)

// Placeholder is the text shown instead of a list when nothing matches.
const Placeholder = "No records found."

// Item is one rendered list entry.
type Item struct {
	Placeholder bool   `json:"placeholder,omitempty"`
	Text        string `json:"text,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	// DeleteKey is the email the item's delete control is bound to.
	DeleteKey string `json:"deleteKey,omitempty"`
}

// ListView is the container a controller renders into.
type ListView interface {
	// Clear removes every item from the container.
	Clear()
	// Append adds one item at the end of the container.
	Append(item Item)
}

// Items converts records to list items. An empty input yields a single
// placeholder item, never an empty list.
func Items(records []models.Record) []Item {
	if len(records) == 0 {
		return []Item{{Placeholder: true, Text: Placeholder}}
	}
	items := make([]Item, len(records))
	for i, r := range records {
		items[i] = Item{
			Timestamp: r.Timestamp,
			Name:      r.Name,
			Email:     r.Email,
			DeleteKey: r.Email,
		}
	}
	return items
}

// Render clears v and appends the items for records.
func Render(v ListView, records []models.Record) {
	v.Clear()
	for _, item := range Items(records) {
		v.Append(item)
	}
}
