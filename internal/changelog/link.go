package changelog

import "strings"

// Metadata column names as they appear in the workbooks.
const (
	ColumnTag         = "TAG"
	ColumnArea        = "Área"
	ColumnType        = "Tipo"
	ColumnSystem      = "Sistema"
	ColumnDescription = "Descrição"
)

// Link joins each event back to its source row and copies the fixed metadata
// projection onto it. The join is left-outer from events to rows: an event
// always survives, even when a metadata column is absent from the workbook;
// the field just stays empty. Output length equals input length exactly.
func Link(events []ChangeEvent, t Table) []LinkedEvent {
	tagCol, hasTag := t.Column(ColumnTag)
	areaCol, hasArea := t.Column(ColumnArea)
	typeCol, hasType := t.Column(ColumnType)
	systemCol, hasSystem := t.Column(ColumnSystem)
	descCol, hasDesc := t.Column(ColumnDescription)

	linked := make([]LinkedEvent, 0, len(events))
	for _, ev := range events {
		le := LinkedEvent{ChangeEvent: ev}
		if hasTag {
			le.Tag = strings.TrimSpace(t.Cell(ev.SourceRow, tagCol))
		}
		if hasArea {
			le.Area = strings.TrimSpace(t.Cell(ev.SourceRow, areaCol))
		}
		if hasType {
			le.Type = strings.TrimSpace(t.Cell(ev.SourceRow, typeCol))
		}
		if hasSystem {
			le.System = strings.TrimSpace(t.Cell(ev.SourceRow, systemCol))
		}
		if hasDesc {
			le.Description = strings.TrimSpace(t.Cell(ev.SourceRow, descCol))
		}
		linked = append(linked, le)
	}
	return linked
}
