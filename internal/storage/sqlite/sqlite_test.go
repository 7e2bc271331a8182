package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteblue/noteblue/internal/storage"
)

func openTestAdapter(t *testing.T, key string) *Adapter {
	t.Helper()
	a, err := Open(t.TempDir(), key)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func sampleRecords() []storage.NoteRecord {
	created := time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)
	return []storage.NoteRecord{
		{
			ID: "n-1", Title: "First", Content: "line1\nline2", Category: "Work",
			CreatedAt: created, UpdatedAt: created.Add(time.Hour),
		},
		{
			ID: "n-2", Title: "© unicode — title", Content: "", Category: "",
			CreatedAt: created.Add(time.Minute), UpdatedAt: created.Add(time.Minute),
		},
	}
}

func TestNotesRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := openTestAdapter(t, "")

	require.NoError(t, a.SaveNotes(ctx, sampleRecords()))

	loaded, err := a.LoadNotes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	for i, rec := range sampleRecords() {
		assert.Equal(t, rec.ID, loaded[i].ID)
		assert.Equal(t, rec.Title, loaded[i].Title)
		assert.Equal(t, rec.Content, loaded[i].Content)
		assert.Equal(t, rec.Category, loaded[i].Category)
		assert.True(t, rec.CreatedAt.Equal(loaded[i].CreatedAt), "createdAt must round-trip")
		assert.True(t, rec.UpdatedAt.Equal(loaded[i].UpdatedAt), "updatedAt must round-trip")
	}
}

func TestSaveNotes_ReplacesWholeTable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := openTestAdapter(t, "")

	require.NoError(t, a.SaveNotes(ctx, sampleRecords()))
	require.NoError(t, a.SaveNotes(ctx, sampleRecords()[1:]))

	loaded, err := a.LoadNotes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "n-2", loaded[0].ID)
}

func TestCategories_DefaultsUntilFirstSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := openTestAdapter(t, "")

	cats, err := a.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultCategories(), cats)

	// An explicitly saved empty list must not resurrect the defaults.
	require.NoError(t, a.SaveCategories(ctx, []string{}))
	cats, err = a.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	want := []string{"Personal", "Side Projects", "Archive"}
	require.NoError(t, a.SaveCategories(ctx, want))
	cats, err = a.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, cats)
}

func TestClearAll_ResetsToNeverStored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := openTestAdapter(t, "")

	require.NoError(t, a.SaveNotes(ctx, sampleRecords()))
	require.NoError(t, a.SaveCategories(ctx, []string{"Only"}))
	require.NoError(t, a.ClearAll(ctx))

	notes, err := a.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	cats, err := a.LoadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultCategories(), cats)
}

func TestOpen_WithEncryptionKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := openTestAdapter(t, "correct horse battery staple")

	require.NoError(t, a.SaveNotes(ctx, sampleRecords()))
	loaded, err := a.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}
