package changelog

import (
	"strings"
	"time"
)

// Table is the engine's view of one workbook sheet: a header row plus the
// ordered data rows beneath it. Row ordinals are stable for the lifetime of
// the value and are what ChangeEvent.SourceRow refers back to.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Column returns the index of the named header. Header cells are compared
// after whitespace trimming because hand-edited sheets pick up stray spaces.
func (t Table) Column(name string) (int, bool) {
	for i, h := range t.Headers {
		if strings.TrimSpace(h) == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the cell at (row, col), or the empty string when the row is
// shorter than the header row. excelize trims trailing empty cells per row,
// so short rows are normal, not an error.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ChangeEvent is the atomic unit produced by parsing one annotation cell.
// One cell yields at most one event; events are immutable and never merged.
type ChangeEvent struct {
	// SourceRow is the ordinal of the originating data row. It is a
	// back-reference, not ownership: many events may point at one row.
	SourceRow int `json:"source_row"`
	// Field is the canonical monitored-column label the cell came from.
	Field  string `json:"field"`
	Person string `json:"person"`
	// Timestamp has second precision, as written in the cell.
	Timestamp time.Time `json:"timestamp"`
	// Date is Timestamp truncated to its calendar day.
	Date time.Time `json:"date"`
	// WeekBucket identifies the Monday-start week containing Date. The
	// string is opaque but lexically sortable, see WeekBucket.
	WeekBucket string `json:"week_bucket"`
	// MonthBucket is the YYYY-MM month identifier.
	MonthBucket string `json:"month_bucket"`
}

// LinkedEvent is a ChangeEvent enriched with metadata copied from its source
// row at link time. Missing metadata stays empty; the event survives.
type LinkedEvent struct {
	ChangeEvent

	Tag         string `json:"tag"`
	Area        string `json:"area"`
	Type        string `json:"type"`
	System      string `json:"system"`
	Description string `json:"description"`
}
