package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingEntry_Status(t *testing.T) {
	tests := []struct {
		name  string
		entry ReadingEntry
		want  string
	}{
		{"ongoing", ReadingEntry{CurrentPart: 4}, "4 (Ongoing)"},
		{"bounded", ReadingEntry{CurrentPart: 4, TotalParts: Parts(10)}, "4/10"},
		{"ongoing not started", ReadingEntry{}, "0 (Ongoing)"},
		{"finished", ReadingEntry{CurrentPart: 12, TotalParts: Parts(12)}, "12/12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Status())
		})
	}
}

func TestReadingEntry_ProgressRatio(t *testing.T) {
	assert.InDelta(t, 3.0, ReadingEntry{CurrentPart: 3}.ProgressRatio(), 1e-9)
	assert.InDelta(t, 0.5, ReadingEntry{CurrentPart: 5, TotalParts: Parts(10)}.ProgressRatio(), 1e-9)
	assert.InDelta(t, 0.0, ReadingEntry{TotalParts: Parts(10)}.ProgressRatio(), 1e-9)
}

func TestReadingEntry_IsOngoing(t *testing.T) {
	assert.True(t, ReadingEntry{}.IsOngoing())
	assert.False(t, ReadingEntry{TotalParts: Parts(1)}.IsOngoing())
}

func TestReadingEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   ReadingEntry
		wantErr bool
	}{
		{"valid ongoing", ReadingEntry{Title: "Solo Leveling", Type: ReadingTypeManhwa}, false},
		{"valid bounded", ReadingEntry{Title: "Dune", Type: ReadingTypeBook, TotalParts: Parts(48), CurrentPart: 3}, false},
		{"current beyond total is allowed", ReadingEntry{Title: "Dune", Type: ReadingTypeBook, TotalParts: Parts(2), CurrentPart: 3}, false},
		{"empty title", ReadingEntry{Title: "", Type: ReadingTypeBook}, true},
		{"blank title", ReadingEntry{Title: "   ", Type: ReadingTypeBook}, true},
		{"unknown type", ReadingEntry{Title: "X", Type: "novel"}, true},
		{"type is case sensitive", ReadingEntry{Title: "X", Type: "Comic"}, true},
		{"zero total", ReadingEntry{Title: "X", Type: ReadingTypeComic, TotalParts: Parts(0)}, true},
		{"negative current", ReadingEntry{Title: "X", Type: ReadingTypeComic, CurrentPart: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidEntry)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseReadingType(t *testing.T) {
	for _, rt := range ReadingTypes() {
		got, err := ParseReadingType(string(rt))
		require.NoError(t, err)
		assert.Equal(t, rt, got)
	}

	_, err := ParseReadingType("All")
	assert.ErrorIs(t, err, ErrInvalidEntry)
}
