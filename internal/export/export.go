// Package export formats a note into a shareable plain-text payload and
// hands it to a share sink. Formatting cannot fail; only the sink can.
package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/noteblue/noteblue/internal/errs"
	"github.com/noteblue/noteblue/internal/markup"
	"github.com/noteblue/noteblue/internal/obs"
	"github.com/noteblue/noteblue/internal/store"
)

// Outcome reports what the sink did with the payload. Dismissed is not an
// error: the user changed their mind.
type Outcome int

const (
	Shared Outcome = iota
	Dismissed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Shared:
		return "shared"
	case Dismissed:
		return "dismissed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Payload is the formatted note handed to a sink.
type Payload struct {
	Message string
	Title   string
}

// ShareSink delivers a payload to an external destination.
type ShareSink interface {
	Share(ctx context.Context, p Payload) (Outcome, error)
}

// LastUpdatedLayout formats the "Last updated" line timestamp.
const LastUpdatedLayout = "Jan 2, 2006 3:04 PM"

// Service formats notes and shares them through a sink.
type Service struct {
	sink ShareSink
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates an export service over the given sink.
func NewService(sink ShareSink) *Service {
	return &Service{
		sink: sink,
		log:  obs.Pkg("export"),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Format builds the shareable payload for a note: title line, blank line,
// flattened content, an optional category line, and a "Last updated" line.
// An unsaved draft (zero UpdatedAt) uses the current time.
func (s *Service) Format(note store.Note) Payload {
	title := note.Title
	if title == "" {
		title = store.UntitledTitle
	}

	updatedAt := note.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}

	message := title + "\n\n" + markup.ToPlainText(note.Content) + "\n\n"
	if note.Category != "" {
		message += "Category: " + note.Category + "\n"
	}
	message += "Last updated: " + updatedAt.Format(LastUpdatedLayout)

	return Payload{Message: message, Title: title}
}

// Export formats note and hands it to the sink. A sink error or a Failed
// outcome surfaces as a single export error; Dismissed does not.
func (s *Service) Export(ctx context.Context, note store.Note) (Outcome, error) {
	payload := s.Format(note)

	outcome, err := s.sink.Share(ctx, payload)
	if err != nil {
		return Failed, errs.Wrap(errs.ExportFailed, "failed to export note", err)
	}
	if outcome == Failed {
		return Failed, errs.New(errs.ExportFailed, "share sink reported failure")
	}

	s.log.Debug("note exported", "note_id", note.ID, "outcome", outcome.String())
	return outcome, nil
}

// WriterSink shares payloads by writing the message to an io.Writer,
// used by the CLI to export to stdout or a file.
type WriterSink struct {
	W io.Writer
}

func (w WriterSink) Share(ctx context.Context, p Payload) (Outcome, error) {
	if _, err := fmt.Fprintln(w.W, p.Message); err != nil {
		return Failed, err
	}
	return Shared, nil
}
