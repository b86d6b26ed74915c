// Package exporter serializes engine outputs as delimiter-separated text.
// The field separator is ";" to match the regional spreadsheet convention
// of the source data, and files start with a UTF-8 BOM so Excel detects
// the encoding.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Fixed output filenames per export type.
const (
	// DetailFileName receives the currently displayed detail rows.
	DetailFileName = "detalhes_alteracoes.csv"
	// MonthPeopleFileName receives the month → people export.
	MonthPeopleFileName = "pessoas_por_mes.csv"
)

// Separator is the field separator for every export.
const Separator = ';'

var bom = []byte{0xEF, 0xBB, 0xBF}

// Write serializes headers plus records to w.
func Write(w io.Writer, headers []string, records [][]string) error {
	if _, err := w.Write(bom); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.Comma = Separator

	if len(headers) > 0 {
		if err := cw.Write(headers); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}
	for i, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FileWriter writes exports into a reports directory.
type FileWriter struct {
	reportsDir string
	logger     *slog.Logger
}

// NewFileWriter creates a file writer rooted at reportsDir.
func NewFileWriter(reportsDir string, logger *slog.Logger) *FileWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWriter{reportsDir: reportsDir, logger: logger}
}

// WriteFile writes one export under the reports directory and returns the
// full path.
func (w *FileWriter) WriteFile(name string, headers []string, records [][]string) (string, error) {
	if err := os.MkdirAll(w.reportsDir, 0755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	path := filepath.Join(w.reportsDir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if err := Write(file, headers, records); err != nil {
		return "", err
	}

	w.logger.Info("export written",
		slog.String("path", path),
		slog.Int("records", len(records)))
	return path, nil
}

// StreamWriter writes large exports record by record.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter opens a streaming export under the reports directory.
func (w *FileWriter) CreateStreamWriter(name string, headers []string) (*StreamWriter, error) {
	if err := os.MkdirAll(w.reportsDir, 0755); err != nil {
		return nil, fmt.Errorf("create reports directory: %w", err)
	}

	file, err := os.Create(filepath.Join(w.reportsDir, name))
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}

	if _, err := file.Write(bom); err != nil {
		file.Close()
		return nil, fmt.Errorf("write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	writer.Comma = Separator
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("write headers: %w", err)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord appends one record to the stream.
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream.
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
