package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
)

func TestReadingService_Add(t *testing.T) {
	store := newMockReadingStore()
	svc := NewReadingService(store)
	ctx := context.Background()

	entry, err := svc.Add(ctx, "alice", NewEntryInput{Title: "  Dune ", Type: "book", TotalParts: model.Parts(48)})
	require.NoError(t, err)

	assert.Equal(t, "Dune", entry.Title)
	assert.Equal(t, 0, entry.CurrentPart)
	require.NotNil(t, entry.TotalParts)
	assert.Equal(t, 48, *entry.TotalParts)

	stored, err := store.Get(ctx, "alice", "Dune")
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestReadingService_AddOngoing(t *testing.T) {
	svc := NewReadingService(newMockReadingStore())

	entry, err := svc.Add(context.Background(), "alice", NewEntryInput{Title: "One Piece", Type: "comic", TotalParts: nil})
	require.NoError(t, err)
	assert.True(t, entry.IsOngoing())
	assert.Equal(t, "0 (Ongoing)", entry.Status())
}

func TestReadingService_AddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		in      NewEntryInput
		wantErr error
	}{
		{"zero total", NewEntryInput{Title: "X", Type: "book", TotalParts: model.Parts(0)}, model.ErrInvalidEntry},
		{"negative total", NewEntryInput{Title: "X", Type: "book", TotalParts: model.Parts(-3)}, model.ErrInvalidEntry},
		{"empty title", NewEntryInput{Title: "", Type: "book"}, model.ErrInvalidEntry},
		{"unknown type", NewEntryInput{Title: "X", Type: "novel"}, model.ErrInvalidEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockReadingStore()
			svc := NewReadingService(store)

			_, err := svc.Add(context.Background(), "alice", tt.in)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.upserts, "invalid input must not reach the store")
		})
	}
}

func TestReadingService_AddExistingTitleOverwrites(t *testing.T) {
	store := newMockReadingStore()
	svc := NewReadingService(store)
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", NewEntryInput{Title: "Dune", Type: "book"})
	require.NoError(t, err)
	_, err = svc.UpdateProgress(ctx, "alice", "Dune", 12)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "alice", NewEntryInput{Title: "Dune", Type: "comic", TotalParts: model.Parts(6)})
	require.NoError(t, err)

	entries, err := svc.List(ctx, "alice", FilterAll, SortByTitle)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ReadingTypeComic, entries[0].Type)
	assert.Equal(t, 0, entries[0].CurrentPart)
}

func TestReadingService_UpdateProgress(t *testing.T) {
	store := newMockReadingStore()
	svc := NewReadingService(store)
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", NewEntryInput{Title: "Dune", Type: "book", TotalParts: model.Parts(48)})
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(ctx, "alice", "Dune", 7)
	require.NoError(t, err)
	assert.Equal(t, "7/48", updated.Status())

	got, err := svc.Get(ctx, "alice", "Dune")
	require.NoError(t, err)
	assert.Equal(t, 7, got.CurrentPart)
	assert.Equal(t, model.ReadingTypeBook, got.Type, "update keeps the other fields")
	require.NotNil(t, got.TotalParts)
	assert.Equal(t, 48, *got.TotalParts)
}

func TestReadingService_UpdateProgress_Errors(t *testing.T) {
	svc := NewReadingService(newMockReadingStore())
	ctx := context.Background()

	_, err := svc.UpdateProgress(ctx, "alice", "Missing", 1)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = svc.UpdateProgress(ctx, "alice", "Missing", -1)
	assert.ErrorIs(t, err, ErrInvalidNumber)
}

func TestReadingService_UpdateProgress_OtherAccountInvisible(t *testing.T) {
	svc := NewReadingService(newMockReadingStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", NewEntryInput{Title: "Dune", Type: "book"})
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, "bob", "Dune", 3)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestReadingService_List(t *testing.T) {
	svc := NewReadingService(newMockReadingStore())
	ctx := context.Background()

	for _, in := range []NewEntryInput{
		{Title: "Dune", Type: "book", TotalParts: model.Parts(10)},
		{Title: "akira", Type: "comic"},
		{Title: "Berserk", Type: "comic", TotalParts: model.Parts(40)},
	} {
		_, err := svc.Add(ctx, "alice", in)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, "alice", "", SortByTitle)
	require.NoError(t, err)
	assert.Equal(t, []string{"akira", "Berserk", "Dune"}, titles(all))

	comics, err := svc.List(ctx, "alice", "comic", SortByTitle)
	require.NoError(t, err)
	assert.Equal(t, []string{"akira", "Berserk"}, titles(comics))

	empty, err := svc.List(ctx, "bob", FilterAll, SortByTitle)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReadingService_ListStorageError(t *testing.T) {
	store := newMockReadingStore()
	store.listErr = errStorage
	svc := NewReadingService(store)

	_, err := svc.List(context.Background(), "alice", FilterAll, SortByTitle)
	assert.ErrorIs(t, err, errStorage)
}

func TestReadingService_Export(t *testing.T) {
	svc := NewReadingService(newMockReadingStore())
	ctx := context.Background()

	_, err := svc.Export(ctx, "alice")
	require.ErrorIs(t, err, ErrNothingToExport)

	_, err = svc.Add(ctx, "alice", NewEntryInput{Title: "Dune", Type: "book", TotalParts: model.Parts(48)})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "alice", NewEntryInput{Title: "Akira", Type: "comic"})
	require.NoError(t, err)
	_, err = svc.UpdateProgress(ctx, "alice", "Akira", 5)
	require.NoError(t, err)

	data, err := svc.Export(ctx, "alice")
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	loaded, err := svc.List(ctx, "alice", FilterAll, SortByTitle)
	require.NoError(t, err)
	require.Len(t, records, len(loaded)+1, "one row per loaded entry plus header")

	rows := map[string][]string{}
	for _, r := range records[1:] {
		rows[r[0]] = r
	}
	assert.Equal(t, []string{"Dune", "book", "48", "0", "0/48"}, rows["Dune"])
	assert.Equal(t, []string{"Akira", "comic", "", "5", "5 (Ongoing)"}, rows["Akira"])
}

func TestParseTotalParts(t *testing.T) {
	tests := []struct {
		in      string
		want    *int
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"48", model.Parts(48), false},
		{" 7 ", model.Parts(7), false},
		{"ten", nil, true},
		{"0", nil, true},
		{"-3", nil, true},
		{"4.5", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTotalParts(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCurrentPart(t *testing.T) {
	n, err := ParseCurrentPart(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = ParseCurrentPart("1.5")
	assert.ErrorIs(t, err, ErrInvalidNumber)

	_, err = ParseCurrentPart("-1")
	assert.ErrorIs(t, err, ErrInvalidNumber)
}
