package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidEntry is returned by ReadingEntry.Validate when a field violates
// the entry rules. The wrapping error names the offending field.
var ErrInvalidEntry = errors.New("invalid reading entry")

// ReadingType is the category of a tracked title. It is stored as plain text
// so the allow-list can grow without a schema change.
type ReadingType string

const (
	ReadingTypeComic  ReadingType = "comic"
	ReadingTypeManhwa ReadingType = "manhwa"
	ReadingTypeManhua ReadingType = "manhua"
	ReadingTypeBook   ReadingType = "book"
)

// ReadingTypes returns the allowed categories in display order.
func ReadingTypes() []ReadingType {
	return []ReadingType{ReadingTypeComic, ReadingTypeManhwa, ReadingTypeManhua, ReadingTypeBook}
}

// ParseReadingType returns the ReadingType matching s exactly.
func ParseReadingType(s string) (ReadingType, error) {
	for _, t := range ReadingTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown type %q", ErrInvalidEntry, s)
}

// ReadingEntry is one title's progress, scoped to an account by the store.
type ReadingEntry struct {
	Title       string
	Type        ReadingType
	TotalParts  *int // nil means ongoing; total unknown.
	CurrentPart int

	// Managed by the store; ignored by Upsert.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOngoing reports whether the total part count is unknown.
func (e ReadingEntry) IsOngoing() bool {
	return e.TotalParts == nil
}

// Status returns "4/10" for bounded entries and "4 (Ongoing)" otherwise.
func (e ReadingEntry) Status() string {
	if e.TotalParts == nil {
		return fmt.Sprintf("%d (Ongoing)", e.CurrentPart)
	}
	return fmt.Sprintf("%d/%d", e.CurrentPart, *e.TotalParts)
}

// ProgressRatio is CurrentPart divided by TotalParts, or by 1 when ongoing.
// An ongoing entry's ratio is therefore its raw part count. Only used as a
// sort key.
func (e ReadingEntry) ProgressRatio() float64 {
	total := 1
	if e.TotalParts != nil {
		total = *e.TotalParts
	}
	return float64(e.CurrentPart) / float64(total)
}

// Validate checks the title, type and part counts.
func (e ReadingEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEntry)
	}
	if _, err := ParseReadingType(string(e.Type)); err != nil {
		return err
	}
	if e.TotalParts != nil && *e.TotalParts <= 0 {
		return fmt.Errorf("%w: total parts must be positive, got %d", ErrInvalidEntry, *e.TotalParts)
	}
	if e.CurrentPart < 0 {
		return fmt.Errorf("%w: current part must not be negative, got %d", ErrInvalidEntry, e.CurrentPart)
	}
	return nil
}

// Parts returns a pointer to n, for building bounded entries.
func Parts(n int) *int {
	return &n
}
