// Package models defines the core domain models for the registrar.
//
// # Records
//
// The registry holds a single entity, Record: a name/email pair stamped with
// the moment it was registered. Records are never edited. They are created by
// a registration and destroyed either by a delete-by-email or by clearing the
// whole collection.
//
// # Persisted Shape
//
// The collection is persisted as one JSON array under one local-storage key.
// Field names on the wire are the historical ones:
//
//	[{"nome": "Ana", "email": "ana@example.com", "data": "17/10/2026, 14:03:05"}]
//
// The timestamp is display text in the pt-BR convention and is never parsed
// back into a time value.
//
// # Identity
//
// Email is used as the key for deletion but uniqueness is not enforced on
// insert. Deleting an email removes every record that carries it.
package models
