package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook builds a minimal .xlsx fixture with the given rows on the
// first sheet.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			col, err := excelize.ColumnNumberToName(j + 1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, i+1), val))
		}
	}

	path := filepath.Join(t.TempDir(), "register.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFirstSheet(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"TAG", "Última atualização:"},
		{"T-001", "Ana Silva - 05/03/2024 09:15:00"},
		{"T-002", ""},
	})

	table, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"TAG", "Última atualização:"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "T-001", table.Cell(0, 0))
	assert.Equal(t, "Ana Silva - 05/03/2024 09:15:00", table.Cell(0, 1))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

// A file that is not a real workbook is the one true error condition.
func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	_, err := Read(path)
	assert.Error(t, err)
}

func TestReadEmptyWorkbook(t *testing.T) {
	path := writeWorkbook(t, nil)

	table, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}
