package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"playstore-insights/models"
	"playstore-insights/utils"
)

const utf8BOM = "\ufeff"

// Loader reads the delimited app dataset into RawApps.
type Loader struct {
	logger *utils.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load opens the file at path and reads every row.
// A missing file yields an error matching fs.ErrNotExist.
func (l *Loader) Load(path string) ([]*models.RawApp, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %q: %w", path, err)
	}
	defer f.Close()

	apps, err := l.read(f)
	if err != nil {
		return nil, fmt.Errorf("loader: read %q: %w", path, err)
	}

	l.logger.Info("[loader] Loaded %d rows from %s", len(apps), path)
	return apps, nil
}

// LoadReader reads every row from r. The first row must be the header.
func (l *Loader) LoadReader(r io.Reader) ([]*models.RawApp, error) {
	apps, err := l.read(r)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return apps, nil
}

func (l *Loader) read(r io.Reader) ([]*models.RawApp, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input, no header row", ErrSchema)
	}
	if err != nil {
		return nil, asParseError(err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var apps []*models.RawApp
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, asParseError(err)
		}

		line, _ := reader.FieldPos(0)
		apps = append(apps, &models.RawApp{
			Line:     line,
			Name:     record[idx[models.ColApp]],
			Category: record[idx[models.ColCategory]],
			Rating:   record[idx[models.ColRating]],
			Reviews:  record[idx[models.ColReviews]],
			Size:     record[idx[models.ColSize]],
			Installs: record[idx[models.ColInstalls]],
			Type:     record[idx[models.ColType]],
			Price:    record[idx[models.ColPrice]],
		})
	}

	l.logger.Debug("[loader] Read %d data rows", len(apps))
	return apps, nil
}

// columnIndex maps every required column name to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range models.RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrSchema, strings.Join(missing, ", "))
	}
	return idx, nil
}

func asParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return err
}
