package sink

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXFile writes the table as a single-sheet Excel workbook, for
// consumers that prefer a spreadsheet file over CSV. Like every sink it
// is full-refresh: the workbook is rebuilt from scratch on each Flush.
type XLSXFile struct {
	Path string
	Tab  string
}

// NewXLSXFile returns an XLSX sink targeting path, writing into the
// named tab.
func NewXLSXFile(path, tab string) *XLSXFile {
	return &XLSXFile{Path: path, Tab: tab}
}

// Flush writes header + rows into the workbook's tab and saves it.
func (s *XLSXFile) Flush(ctx context.Context, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(s.Tab)
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", s.Tab, err)
	}
	f.SetActiveSheet(index)

	if err := s.writeRow(f, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := s.writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize creates alongside ours.
	if s.Tab != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.Path, err)
	}
	return nil
}

func (s *XLSXFile) writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(s.Tab, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
