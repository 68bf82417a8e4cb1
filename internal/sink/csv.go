package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVFile writes the table as a CSV file. The write is atomic: content
// goes to a temporary file in the destination directory which is then
// renamed into place, so a failed run never leaves a half-written file.
type CSVFile struct {
	Path string
}

// NewCSVFile returns a CSV sink targeting path.
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{Path: path}
}

// Flush writes header + rows to the destination path.
func (s *CSVFile) Flush(ctx context.Context, header []string, rows [][]string) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.Path, err)
	}
	return nil
}
