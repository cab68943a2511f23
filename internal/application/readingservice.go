package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

// Sentinel errors returned by ReadingService.
var (
	// ErrInvalidNumber indicates a part count that is not a valid integer in range.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrEntryNotFound indicates no entry exists for the requested title.
	ErrEntryNotFound = errors.New("reading entry not found")

	// ErrNothingToExport indicates the account has no entries to export.
	ErrNothingToExport = errors.New("nothing to export")
)

// NewEntryInput is the input for adding a title. A nil TotalParts means
// ongoing. Driving adapters parse form text with ParseTotalParts.
type NewEntryInput struct {
	Title      string
	Type       string
	TotalParts *int
}

// ReadingService implements the add, update, list and export flows on top of
// the ReadingStore. Every call is scoped to an explicit username.
type ReadingService struct {
	readings driven.ReadingStore
}

// NewReadingService creates a new ReadingService with the required dependencies.
func NewReadingService(readings driven.ReadingStore) *ReadingService {
	return &ReadingService{readings: readings}
}

// Add saves a new entry with zero progress. Saving a title that already
// exists replaces its type and total and resets its progress.
func (s *ReadingService) Add(ctx context.Context, username string, in NewEntryInput) (model.ReadingEntry, error) {
	entry := model.ReadingEntry{
		Title:      strings.TrimSpace(in.Title),
		Type:       model.ReadingType(in.Type),
		TotalParts: in.TotalParts,
	}
	if err := entry.Validate(); err != nil {
		return model.ReadingEntry{}, err
	}

	if err := s.readings.Upsert(ctx, username, entry); err != nil {
		return model.ReadingEntry{}, err
	}
	return entry, nil
}

// UpdateProgress loads the entry for (username, title), sets its current part
// and saves it back.
func (s *ReadingService) UpdateProgress(ctx context.Context, username, title string, current int) (model.ReadingEntry, error) {
	if current < 0 {
		return model.ReadingEntry{}, fmt.Errorf("%w: current part must not be negative", ErrInvalidNumber)
	}

	existing, err := s.readings.Get(ctx, username, title)
	if err != nil {
		return model.ReadingEntry{}, err
	}
	if existing == nil {
		return model.ReadingEntry{}, fmt.Errorf("%w: %q", ErrEntryNotFound, title)
	}

	updated := *existing
	updated.CurrentPart = current

	if err := s.readings.Upsert(ctx, username, updated); err != nil {
		return model.ReadingEntry{}, err
	}
	return updated, nil
}

// Get returns the entry for (username, title) or ErrEntryNotFound.
func (s *ReadingService) Get(ctx context.Context, username, title string) (model.ReadingEntry, error) {
	entry, err := s.readings.Get(ctx, username, title)
	if err != nil {
		return model.ReadingEntry{}, err
	}
	if entry == nil {
		return model.ReadingEntry{}, fmt.Errorf("%w: %q", ErrEntryNotFound, title)
	}
	return *entry, nil
}

// List loads the account's entries and applies the type filter and sort.
func (s *ReadingService) List(ctx context.Context, username, filter string, sortKey SortKey) ([]model.ReadingEntry, error) {
	entries, err := s.readings.ListByAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	if filter == "" {
		filter = FilterAll
	}
	return SortEntries(FilterByType(entries, filter), sortKey), nil
}

// Export renders every entry of the account as CSV. Returns
// ErrNothingToExport when the account has no entries.
func (s *ReadingService) Export(ctx context.Context, username string) ([]byte, error) {
	entries, err := s.readings.ListByAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNothingToExport
	}
	return ToCSV(entries)
}

// ParseTotalParts parses the optional total part count. Blank text means
// ongoing and returns nil.
func ParseTotalParts(text string) (*int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, fmt.Errorf("%w: total parts %q is not an integer", ErrInvalidNumber, text)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: total parts must be positive, got %d", ErrInvalidNumber, n)
	}
	return &n, nil
}

// ParseCurrentPart parses a progress value, which must be a non-negative integer.
func ParseCurrentPart(text string) (int, error) {
	text = strings.TrimSpace(text)
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: current part %q is not an integer", ErrInvalidNumber, text)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: current part must not be negative, got %d", ErrInvalidNumber, n)
	}
	return n, nil
}
