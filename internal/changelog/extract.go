package changelog

import (
	"log/slog"
)

// Extractor applies the annotation parser across every monitored column of a
// workbook table.
type Extractor struct {
	registry *Registry
	logger   *slog.Logger
}

// NewExtractor creates an extractor over the given registry.
func NewExtractor(registry *Registry, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{registry: registry, logger: logger}
}

// Extract produces one ChangeEvent per annotation cell that parses. Events
// are ordered by source row within each column; no cross-column order is
// guaranteed. A workbook with no monitored columns, or none whose cells
// parse, yields an empty collection. That is a valid state, not an error.
func (e *Extractor) Extract(t Table) []ChangeEvent {
	present := e.registry.Present(t.Headers)

	var events []ChangeEvent
	for _, pc := range present {
		for row := range t.Rows {
			person, ts, ok := ParseAnnotation(t.Cell(row, pc.Column))
			if !ok {
				continue
			}
			events = append(events, ChangeEvent{
				SourceRow:   row,
				Field:       pc.Field,
				Person:      person,
				Timestamp:   ts,
				Date:        DayOf(ts),
				WeekBucket:  WeekBucket(ts),
				MonthBucket: MonthBucket(ts),
			})
		}
	}

	e.logger.Debug("extracted change events",
		slog.Int("monitored_columns", len(present)),
		slog.Int("rows", len(t.Rows)),
		slog.Int("events", len(events)))

	return events
}
