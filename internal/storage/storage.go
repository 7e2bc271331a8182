// Package storage defines the durable persistence contract for the note
// engine. Adapters store whole collections: every save replaces the full
// persisted state, so the last write to complete is always a consistent
// snapshot rather than a partially-applied merge.
package storage

import (
	"context"
	"time"
)

// NoteRecord is the serialized form of a note. Timestamps round-trip as
// ISO-8601 text in every adapter.
type NoteRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultCategories returns the category set used when no categories have
// ever been stored.
func DefaultCategories() []string {
	return []string{"Personal", "Work", "Ideas"}
}

// Adapter is a durable store for notes and categories.
//
// LoadNotes returns an empty slice when nothing is stored. LoadCategories
// returns DefaultCategories when categories have never been saved; an
// explicitly saved empty list is preserved as empty. ClearAll removes all
// persisted state (debug/reset).
type Adapter interface {
	LoadNotes(ctx context.Context) ([]NoteRecord, error)
	LoadCategories(ctx context.Context) ([]string, error)
	SaveNotes(ctx context.Context, notes []NoteRecord) error
	SaveCategories(ctx context.Context, categories []string) error
	ClearAll(ctx context.Context) error
}
