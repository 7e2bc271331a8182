package query

import (
	"reflect"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/noteblue/noteblue/internal/store"
)

func noteAt(id, title, content, category string, updated time.Time) store.Note {
	return store.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		Category:  category,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
	}
}

func titles(notes []store.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func TestRun_SearchTermMatchesTitleOrContent(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	notes := []store.Note{
		noteAt("1", "Team meeting", "agenda for tomorrow", "", base),
		noteAt("2", "Groceries", "buy milk", "", base.Add(time.Minute)),
		noteAt("3", "Ideas", "schedule a MEETING with design", "", base.Add(2*time.Minute)),
	}

	got := Run(notes, State{Term: "meeting"})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(got), titles(got))
	}
	for _, n := range got {
		if n.ID == "2" {
			t.Fatalf("Groceries should not match: %v", titles(got))
		}
	}
}

func TestRun_CategoryFilterIsExact(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	notes := []store.Note{
		noteAt("1", "a", "", "Work", base),
		noteAt("2", "b", "", "work", base),
		noteAt("3", "c", "", "", base),
	}

	got := Run(notes, State{Category: "Work"})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("exact category match failed: %v", titles(got))
	}
}

func TestRun_SortOrders(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	notes := []store.Note{
		noteAt("1", "middle", "", "", base.Add(time.Minute)),
		noteAt("2", "oldest", "", "", base),
		noteAt("3", "newest", "", "", base.Add(2*time.Minute)),
	}

	newest := Run(notes, State{Sort: SortNewest})
	if want := []string{"newest", "middle", "oldest"}; !reflect.DeepEqual(titles(newest), want) {
		t.Fatalf("newest order = %v, want %v", titles(newest), want)
	}

	oldest := Run(notes, State{Sort: SortOldest})
	if want := []string{"oldest", "middle", "newest"}; !reflect.DeepEqual(titles(oldest), want) {
		t.Fatalf("oldest order = %v, want %v", titles(oldest), want)
	}
}

func TestRun_AlphabeticalIsLocaleAware(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	notes := []store.Note{
		noteAt("1", "Banana", "", "", base),
		noteAt("2", "apple", "", "", base),
		noteAt("3", "Cherry", "", "", base),
	}

	got := Run(notes, State{Sort: SortAlphabetical})
	if want := []string{"apple", "Banana", "Cherry"}; !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("alphabetical order = %v, want %v", titles(got), want)
	}
}

func TestRun_TimestampTiesKeepInputOrder(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	notes := []store.Note{
		noteAt("1", "first", "", "", base),
		noteAt("2", "second", "", "", base),
		noteAt("3", "third", "", "", base),
	}

	for _, s := range []Sort{SortNewest, SortOldest} {
		got := Run(notes, State{Sort: s})
		if want := []string{"first", "second", "third"}; !reflect.DeepEqual(titles(got), want) {
			t.Fatalf("sort %q tie order = %v, want %v", s, titles(got), want)
		}
	}
}

func TestRun_EmptyCollection(t *testing.T) {
	t.Parallel()

	got := Run(nil, State{Term: "anything", Sort: SortNewest})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

// Run is a pure function: same inputs, same output, input untouched.
func testRun_DeterministicAndNonMutating(t *rapid.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	count := rapid.IntRange(0, 12).Draw(t, "count")

	notes := make([]store.Note, count)
	for i := range notes {
		notes[i] = noteAt(
			rapid.StringMatching(`[a-z0-9]{4,8}`).Draw(t, "id"),
			rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "title"),
			rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "content"),
			rapid.SampledFrom([]string{"", "Work", "Personal"}).Draw(t, "category"),
			base.Add(time.Duration(rapid.IntRange(0, 5).Draw(t, "offset"))*time.Minute),
		)
	}
	original := make([]store.Note, len(notes))
	copy(original, notes)

	state := State{
		Term:     rapid.SampledFrom([]string{"", "a", "work"}).Draw(t, "term"),
		Category: rapid.SampledFrom([]string{"", "Work"}).Draw(t, "filter"),
		Sort:     rapid.SampledFrom([]Sort{SortNewest, SortOldest, SortAlphabetical}).Draw(t, "sort"),
	}

	first := Run(notes, state)
	second := Run(notes, state)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Run is not deterministic:\nfirst=%v\nsecond=%v", titles(first), titles(second))
	}
	if !reflect.DeepEqual(notes, original) {
		t.Fatalf("Run mutated its input")
	}
}

func TestRun_DeterministicAndNonMutating(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testRun_DeterministicAndNonMutating)
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	cases := map[string]Sort{
		"newest":       SortNewest,
		"oldest":       SortOldest,
		"alphabetical": SortAlphabetical,
		"Alphabetical": SortAlphabetical,
		" oldest ":     SortOldest,
		"":             SortNewest,
		"garbage":      SortNewest,
	}
	for in, want := range cases {
		if got := ParseSort(in); got != want {
			t.Fatalf("ParseSort(%q) = %q, want %q", in, got, want)
		}
	}
}
