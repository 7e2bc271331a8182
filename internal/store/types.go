package store

import (
	"time"
)

// UntitledTitle is the title given to notes saved with an empty or
// whitespace-only title.
const UntitledTitle = "Untitled Note"

// Note is a user-authored document. Category is either empty
// (uncategorized) or the name of a category that existed at last save;
// it is cleared by the delete-category cascade, never validated on read.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft contains the caller-supplied fields for a new note.
type Draft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// Patch contains optional updates for an existing note. Nil fields are
// left unchanged (pointer distinguishes "omitted" from "set to empty").
type Patch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Category *string `json:"category,omitempty"`
}
