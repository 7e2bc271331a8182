// Package store owns the authoritative in-memory note collection and
// category set. All mutation goes through it; reads are served from memory
// after the initial load. Every successful mutation schedules a full-state
// write-through to the persistence adapter (see persist.go) and notifies
// subscribers.
package store

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noteblue/noteblue/internal/errs"
	"github.com/noteblue/noteblue/internal/obs"
	"github.com/noteblue/noteblue/internal/storage"
)

// Store is the sole owner of the note collection and category sequence.
// Mutations are serialized under a mutex; the persister goroutine is the
// only other reader and always sees complete snapshots.
type Store struct {
	adapter storage.Adapter
	log     *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	cond       *sync.Cond
	notes      []Note
	categories []string
	seq        uint64
	savedSeq   uint64
	closed     bool
	loadErr    error
	saveErr    error

	subsMu  sync.Mutex
	subs    map[int]chan struct{}
	nextSub int

	persisterDone chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger overrides the package logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open loads notes and categories from the adapter and starts the
// background persister. A load failure is not fatal: the store starts with
// an empty collection and the default categories, logs a warning, and keeps
// the error available via LoadErr.
func Open(ctx context.Context, adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter:       adapter,
		log:           obs.Pkg("store"),
		now:           func() time.Time { return time.Now().UTC() },
		subs:          make(map[int]chan struct{}),
		persisterDone: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}

	s.notes = []Note{}
	s.categories = storage.DefaultCategories()

	records, err := adapter.LoadNotes(ctx)
	if err != nil {
		s.loadErr = errs.Wrap(errs.Unavailable, "failed to load notes", err)
		s.log.Warn("load notes failed, starting empty", "error", err)
	} else {
		s.notes = make([]Note, 0, len(records))
		for _, rec := range records {
			s.notes = append(s.notes, noteFromRecord(rec))
		}
	}

	categories, err := adapter.LoadCategories(ctx)
	if err != nil {
		if s.loadErr == nil {
			s.loadErr = errs.Wrap(errs.Unavailable, "failed to load categories", err)
		}
		s.log.Warn("load categories failed, using defaults", "error", err)
	} else {
		s.categories = categories
	}

	go s.persister()
	return s
}

// LoadErr reports whether the initial load failed. Non-nil is a warning,
// not a fatal condition: the store is usable with empty defaults.
func (s *Store) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Close drains pending writes and stops the persister.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
	<-s.persisterDone
}

// CreateNote adds a new note built from draft. The id is generated, both
// timestamps are set to now, and an empty or whitespace-only title is
// normalized to "Untitled Note". Creation never fails.
func (s *Store) CreateNote(draft Draft) Note {
	now := s.now()
	note := Note{
		ID:        uuid.New().String(),
		Title:     normalizeTitle(draft.Title),
		Content:   draft.Content,
		Category:  draft.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.markDirtyLocked()
	s.mu.Unlock()

	s.notify()
	return note
}

// UpdateNote merges patch into the note with the given id and bumps
// UpdatedAt. An unknown id is a silent no-op, reported by the boolean so
// callers that care can tell. UpdatedAt never decreases, even if the clock
// steps backwards.
func (s *Store) UpdateNote(id string, patch Patch) (Note, bool) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return Note{}, false
	}

	note := s.notes[idx]
	if patch.Title != nil {
		note.Title = normalizeTitle(*patch.Title)
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Category != nil {
		note.Category = *patch.Category
	}
	now := s.now()
	if now.Before(note.UpdatedAt) {
		now = note.UpdatedAt
	}
	note.UpdatedAt = now
	s.notes[idx] = note
	s.markDirtyLocked()
	s.mu.Unlock()

	s.notify()
	return note, true
}

// DeleteNote removes the note with the given id. Deletion is immediate and
// irreversible; an unknown id is a no-op.
func (s *Store) DeleteNote(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	s.markDirtyLocked()
	s.mu.Unlock()

	s.notify()
	return true
}

// GetNote returns the note with the given id, if present.
func (s *Store) GetNote(id string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return Note{}, false
	}
	return s.notes[idx], true
}

// Notes returns a copy of the collection in insertion order.
func (s *Store) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Categories returns a copy of the category sequence in insertion order.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// AddCategory trims name and appends it to the category sequence. It
// returns a coded error when the trimmed name is empty or already present
// (case-sensitive), leaving the sequence unchanged.
func (s *Store) AddCategory(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.New(errs.InvalidArgument, "category name is empty")
	}

	s.mu.Lock()
	for _, existing := range s.categories {
		if existing == trimmed {
			s.mu.Unlock()
			return errs.New(errs.AlreadyExists, "category already exists: "+trimmed)
		}
	}
	s.categories = append(s.categories, trimmed)
	s.markDirtyLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteCategory removes name from the category sequence and clears the
// category field of every note referencing it. The removal and the cascade
// apply atomically: no observer sees a note referencing a deleted category.
// An absent name is a no-op.
func (s *Store) DeleteCategory(name string) {
	s.mu.Lock()
	found := false
	for i, existing := range s.categories {
		if existing == name {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	for i := range s.notes {
		if s.notes[i].Category == name {
			s.notes[i].Category = ""
		}
	}
	s.markDirtyLocked()
	s.mu.Unlock()

	s.notify()
}

// Reset clears all persisted state and resets memory to an empty
// collection with the default categories. Unlike normal mutations it calls
// the adapter synchronously: it is a debug operation and the caller wants
// to know it happened.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	// Quiesce the persister first: a snapshot taken before the clear must
	// not land in storage after it. Holding the lock across ClearAll keeps
	// new mutations and new snapshots out until the reset is complete.
	for s.savedSeq < s.seq {
		s.cond.Wait()
	}
	if err := s.adapter.ClearAll(ctx); err != nil {
		s.mu.Unlock()
		return errs.Wrap(errs.Unavailable, "failed to clear storage", err)
	}
	s.notes = []Note{}
	s.categories = storage.DefaultCategories()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Subscribe registers for change notifications. The returned channel
// receives a signal after every mutation (coalesced if the consumer is
// slow). The cancel function releases the subscription.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	cancel := func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func normalizeTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return UntitledTitle
	}
	return trimmed
}

func noteFromRecord(rec storage.NoteRecord) Note {
	return Note{
		ID:        rec.ID,
		Title:     rec.Title,
		Content:   rec.Content,
		Category:  rec.Category,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func recordFromNote(n Note) storage.NoteRecord {
	return storage.NoteRecord{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  n.Category,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
