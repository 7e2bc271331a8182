// Package query derives the displayed note list from the store's
// collection and a transient query state. Run is a pure function: it never
// mutates its input and is deterministic for identical inputs.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noteblue/noteblue/internal/store"
)

// Sort selects the display ordering.
type Sort string

const (
	SortNewest       Sort = "newest"
	SortOldest       Sort = "oldest"
	SortAlphabetical Sort = "alphabetical"
)

// State holds the transient search/filter/sort parameters. It is owned by
// the presentation layer and passed by value on every recompute.
type State struct {
	Term     string
	Category string
	Sort     Sort
}

// newTitleCollator compares titles the way a locale-aware,
// case-insensitive string compare does ("apple" sorts before "Banana").
// A Collator is not safe for concurrent use, so each Run gets its own.
func newTitleCollator() *collate.Collator {
	return collate.New(language.Und, collate.Loose)
}

// Run filters and sorts notes for display. Ties under every sort order
// retain the input's relative order (stable sort).
func Run(notes []store.Note, state State) []store.Note {
	result := make([]store.Note, 0, len(notes))

	term := strings.ToLower(state.Term)
	for _, n := range notes {
		if term != "" &&
			!strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Content), term) {
			continue
		}
		if state.Category != "" && n.Category != state.Category {
			continue
		}
		result = append(result, n)
	}

	switch state.Sort {
	case SortOldest:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UpdatedAt.Before(result[j].UpdatedAt)
		})
	case SortAlphabetical:
		col := newTitleCollator()
		sort.SliceStable(result, func(i, j int) bool {
			return col.CompareString(result[i].Title, result[j].Title) < 0
		})
	case SortNewest:
		fallthrough
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		})
	}

	return result
}

// ParseSort maps user input to a Sort, defaulting to newest.
func ParseSort(s string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortOldest:
		return SortOldest
	case SortAlphabetical:
		return SortAlphabetical
	default:
		return SortNewest
	}
}
