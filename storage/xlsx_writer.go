package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"playstore-insights/models"
)

const defaultSheet = "Sheet1"

// XLSXWriter exports every report table into one workbook, one sheet each.
type XLSXWriter struct {
	path string
	file *excelize.File
}

// NewXLSXWriter prepares an empty workbook that WriteReport saves to path.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path, file: excelize.NewFile()}, nil
}

// WriteReport fills one sheet per table and saves the workbook.
func (x *XLSXWriter) WriteReport(r *models.Report) error {
	bold, err := x.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, t := range reportTables(r) {
		if err := x.addSheet(i, t, bold); err != nil {
			return err
		}
	}
	x.file.SetActiveSheet(0)

	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func (x *XLSXWriter) addSheet(i int, t table, headerStyle int) error {
	if i == 0 {
		if err := x.file.SetSheetName(defaultSheet, t.name); err != nil {
			return fmt.Errorf("xlsx: rename sheet: %w", err)
		}
	} else if _, err := x.file.NewSheet(t.name); err != nil {
		return fmt.Errorf("xlsx: new sheet %s: %w", t.name, err)
	}

	if err := x.file.SetSheetRow(t.name, "A1", &t.header); err != nil {
		return fmt.Errorf("xlsx: %s header: %w", t.name, err)
	}
	if err := x.file.SetRowStyle(t.name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("xlsx: %s header style: %w", t.name, err)
	}

	for r, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("xlsx: %s cell: %w", t.name, err)
		}
		if err := x.file.SetSheetRow(t.name, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %s row %d: %w", t.name, r+1, err)
		}
	}
	return nil
}

// Close releases the workbook.
func (x *XLSXWriter) Close() error {
	return x.file.Close()
}
