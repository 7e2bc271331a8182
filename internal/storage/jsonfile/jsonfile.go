// Package jsonfile persists notes and categories as one JSON document per
// collection in a data directory. Writes go through a temp file and rename
// so a crash mid-write never leaves a torn document behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/noteblue/noteblue/internal/storage"
)

const (
	// NotesFile is the filename for the notes collection.
	NotesFile = "notes.json"

	// CategoriesFile is the filename for the category list.
	CategoriesFile = "categories.json"

	tempFilePrefix = "noteblue-tmp-"
)

// Adapter stores collections under a single directory.
type Adapter struct {
	dir string
}

var _ storage.Adapter = (*Adapter)(nil)

// New creates the data directory if needed and returns an adapter over it.
func New(dir string) (*Adapter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Adapter{dir: dir}, nil
}

// LoadNotes reads the notes document. A missing file means no notes stored.
func (a *Adapter) LoadNotes(ctx context.Context) ([]storage.NoteRecord, error) {
	data, err := os.ReadFile(filepath.Join(a.dir, NotesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return []storage.NoteRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}

	var notes []storage.NoteRecord
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	if notes == nil {
		notes = []storage.NoteRecord{}
	}
	return notes, nil
}

// LoadCategories reads the category document. A missing file yields the
// default category set; a stored empty list stays empty.
func (a *Adapter) LoadCategories(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(a.dir, CategoriesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return storage.DefaultCategories(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// SaveNotes replaces the notes document.
func (a *Adapter) SaveNotes(ctx context.Context, notes []storage.NoteRecord) error {
	if notes == nil {
		notes = []storage.NoteRecord{}
	}
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	return writeFileAtomic(filepath.Join(a.dir, NotesFile), data, 0o644)
}

// SaveCategories replaces the category document.
func (a *Adapter) SaveCategories(ctx context.Context, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	return writeFileAtomic(filepath.Join(a.dir, CategoriesFile), data, 0o644)
}

// ClearAll removes both documents.
func (a *Adapter) ClearAll(ctx context.Context) error {
	for _, name := range []string{NotesFile, CategoriesFile} {
		if err := os.Remove(filepath.Join(a.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	return nil
}

// writeFileAtomic writes data to a file atomically by writing to a temp file
// in the same directory and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", filename, err)
	}
	return nil
}
