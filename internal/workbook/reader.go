// Package workbook reads .xlsx files into the engine's table form. It is
// the only place the engine's input touches the filesystem, and the only
// stage whose failures are real errors: everything past a successful read
// is recovered locally by the changelog package.
package workbook

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"sheetlog/internal/changelog"
)

// Read loads the first sheet of the workbook at path. The first row is the
// header row; the remaining rows become data rows with stable ordinals.
// Open or format failures abort the invocation with a descriptive error and
// no partial result.
func Read(path string) (changelog.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return changelog.Table{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return changelog.Table{}, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return changelog.Table{}, fmt.Errorf("read sheet %q of %s: %w", sheets[0], path, err)
	}

	var t changelog.Table
	if len(rows) > 0 {
		t.Headers = rows[0]
		t.Rows = rows[1:]
	}

	slog.Debug("workbook loaded",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("columns", len(t.Headers)),
		slog.Int("rows", len(t.Rows)))

	return t, nil
}
