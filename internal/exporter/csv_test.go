package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUsesSemicolonAndBOM(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		[]string{"TAG", "Data", "Hora"},
		[][]string{
			{"T-001", "05/03/2024", "09:15:00"},
			{"T-002", "06/03/2024", "10:00:00"},
		})
	require.NoError(t, err)

	out := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3], "UTF-8 BOM prefix")

	lines := strings.Split(strings.TrimSpace(string(out[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "TAG;Data;Hora", lines[0])
	assert.Equal(t, "T-001;05/03/2024;09:15:00", lines[1])
}

// Fields containing the separator are quoted, not split.
func TestWriteQuotesSeparator(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, [][]string{{"a;b", "c"}}))
	assert.Contains(t, buf.String(), `"a;b";c`)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter(filepath.Join(dir, "reports"), nil)

	path, err := w.WriteFile(DetailFileName, []string{"TAG"}, [][]string{{"T-001"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", DetailFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "T-001")
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter(dir, nil)

	sw, err := w.CreateStreamWriter(MonthPeopleFileName, []string{"Mês", "Pessoas"})
	require.NoError(t, err)
	require.NoError(t, sw.WriteRecord([]string{"2024-03", "Ana, Bruno"}))
	require.NoError(t, sw.WriteRecord([]string{"2024-04", "Carla"}))
	require.NoError(t, sw.Close())

	data, err := os.ReadFile(filepath.Join(dir, MonthPeopleFileName))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Mês;Pessoas")
	// Commas are not the separator, so the people list needs no quoting.
	assert.Contains(t, content, "2024-03;Ana, Bruno")
}
