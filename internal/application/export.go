package application

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
)

// Export file conventions.
const (
	ExportFilename    = "reading_list.csv"
	ExportContentType = "text/csv"
)

var exportHeader = []string{"title", "type", "total_parts", "current_part", "status"}

// ToCSV renders entries as UTF-8 CSV with a header row and one row per entry.
// total_parts is left empty for ongoing entries. An empty slice yields the
// header only; deciding that there is nothing to export is the caller's job.
func ToCSV(entries []model.ReadingEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		total := ""
		if e.TotalParts != nil {
			total = strconv.Itoa(*e.TotalParts)
		}

		record := []string{
			e.Title,
			string(e.Type),
			total,
			strconv.Itoa(e.CurrentPart),
			e.Status(),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %q: %w", e.Title, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
