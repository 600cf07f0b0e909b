package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"playstore-insights/models"
)

// CSVWriter exports each report table as its own CSV file inside a directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates the output directory (and any parents) and returns
// a writer targeting it.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// WriteReport writes one <table>.csv per report table, truncating any
// previous export.
func (c *CSVWriter) WriteReport(r *models.Report) error {
	for _, t := range reportTables(r) {
		if err := c.writeTable(t); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSVWriter) writeTable(t table) error {
	path := filepath.Join(c.dir, t.name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, row := range t.rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush %q: %w", path, err)
	}
	return f.Close()
}

// Close is a no-op: every table file is closed as soon as it is written.
func (c *CSVWriter) Close() error {
	return nil
}
