package store

import (
	"context"

	"github.com/noteblue/noteblue/internal/errs"
	"github.com/noteblue/noteblue/internal/storage"
)

// The persister is the durable half of write-through: mutations bump seq
// and return immediately; this goroutine wakes, snapshots the full current
// state, and writes it out. Overlapping mutations coalesce into one write,
// and because every write carries the complete state, out-of-order or
// skipped intermediate writes can never leave a torn merge on disk.

func (s *Store) markDirtyLocked() {
	s.seq++
	s.cond.Broadcast()
}

func (s *Store) persister() {
	defer close(s.persisterDone)

	for {
		s.mu.Lock()
		for s.seq == s.savedSeq && !s.closed {
			s.cond.Wait()
		}
		if s.closed && s.seq == s.savedSeq {
			s.mu.Unlock()
			return
		}

		seq := s.seq
		records := make([]storage.NoteRecord, len(s.notes))
		for i, n := range s.notes {
			records[i] = recordFromNote(n)
		}
		categories := make([]string, len(s.categories))
		copy(categories, s.categories)
		s.mu.Unlock()

		var saveErr error
		ctx := context.Background()
		if err := s.adapter.SaveNotes(ctx, records); err != nil {
			saveErr = errs.Wrap(errs.Unavailable, "failed to save notes", err)
		}
		if err := s.adapter.SaveCategories(ctx, categories); err != nil && saveErr == nil {
			saveErr = errs.Wrap(errs.Unavailable, "failed to save categories", err)
		}
		if saveErr != nil {
			// In-memory state stays authoritative; unsaved mutations are
			// at risk if the process exits before a later write succeeds.
			s.log.Error("write-through failed", "error", saveErr)
		}

		s.mu.Lock()
		s.savedSeq = seq
		s.saveErr = saveErr
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// Flush blocks until every mutation issued before the call has been
// handed to the adapter, or ctx is done. It lets tests and shutdown await
// durability deterministically.
func (s *Store) Flush(ctx context.Context) error {
	done := make(chan struct{})
	cancelled := false // guarded by mu
	go func() {
		s.mu.Lock()
		target := s.seq
		for s.savedSeq < target && !s.closed && !cancelled {
			s.cond.Wait()
		}
		s.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		return s.LastSaveErr()
	case <-ctx.Done():
		// Release the waiter so it does not stay parked until the next
		// unrelated broadcast.
		s.mu.Lock()
		cancelled = true
		s.cond.Broadcast()
		s.mu.Unlock()
		return ctx.Err()
	}
}

// LastSaveErr returns the error from the most recent completed
// write-through, nil if it succeeded.
func (s *Store) LastSaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}
