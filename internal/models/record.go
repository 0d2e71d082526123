package models

import "time"

// TimestampLayout is the pt-BR display format used for Record.Timestamp.
const TimestampLayout = "02/01/2006, 15:04:05"

// Record represents one registrant entry.
type Record struct {
	// Name is the registrant name as typed. No length or charset constraint.
	Name string `json:"nome"`

	// Email is the registrant email. It doubles as the deletion key and
	// may repeat across records.
	Email string `json:"email"`

	// Timestamp is the registration time formatted with TimestampLayout.
	// Opaque after creation.
	Timestamp string `json:"data"`
}

// NewRecord creates a Record stamped with the given time.
func NewRecord(name, email string, at time.Time) Record {
	return Record{
		Name:      name,
		Email:     email,
		Timestamp: FormatTimestamp(at),
	}
}

// FormatTimestamp renders t in the local zone using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}
