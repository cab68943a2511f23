package application

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
)

// FilterAll is the type selector that keeps every entry.
const FilterAll = "All"

// ErrInvalidSortKey is returned by ParseSortKey for unrecognized keys.
var ErrInvalidSortKey = errors.New("invalid sort key")

// SortKey selects the ordering applied by SortEntries.
type SortKey string

const (
	SortByTitle    SortKey = "Title"
	SortByType     SortKey = "Type"
	SortByProgress SortKey = "Progress"
)

// SortKeys returns the supported keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortByTitle, SortByType, SortByProgress}
}

// ParseSortKey maps s to a SortKey, ignoring case. An empty string means
// SortByTitle.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortByTitle, nil
	}
	for _, k := range SortKeys() {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// FilterByType returns the entries whose type equals selector exactly, in
// input order. FilterAll returns entries unchanged. The input is not modified.
func FilterByType(entries []model.ReadingEntry, selector string) []model.ReadingEntry {
	if selector == FilterAll {
		return entries
	}

	filtered := make([]model.ReadingEntry, 0, len(entries))
	for _, e := range entries {
		if string(e.Type) == selector {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// SortEntries returns a stably sorted copy of entries.
//
//   - SortByTitle, SortByType: ascending, case-insensitive.
//   - SortByProgress: descending by ProgressRatio. Ongoing entries divide by 1,
//     so a long ongoing series can outrank a nearly finished bounded one.
func SortEntries(entries []model.ReadingEntry, key SortKey) []model.ReadingEntry {
	sorted := slices.Clone(entries)

	switch key {
	case SortByType:
		slices.SortStableFunc(sorted, func(a, b model.ReadingEntry) int {
			return strings.Compare(strings.ToLower(string(a.Type)), strings.ToLower(string(b.Type)))
		})
	case SortByProgress:
		slices.SortStableFunc(sorted, func(a, b model.ReadingEntry) int {
			ra, rb := a.ProgressRatio(), b.ProgressRatio()
			switch {
			case ra > rb:
				return -1
			case ra < rb:
				return 1
			default:
				return 0
			}
		})
	default:
		slices.SortStableFunc(sorted, func(a, b model.ReadingEntry) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	}

	return sorted
}
