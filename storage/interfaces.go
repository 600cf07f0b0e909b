package storage

import (
	"context"

	"playstore-insights/models"
)

// AppWriter is the interface any backend storing the cleaned table must satisfy.
type AppWriter interface {
	Write(ctx context.Context, apps []*models.App) error
	Close() error
}

// ReportWriter is the interface for exporting generated report tables.
type ReportWriter interface {
	WriteReport(r *models.Report) error
	Close() error
}

// AppReader reads back a previously written app table.
type AppReader interface {
	FetchAll(ctx context.Context) ([]*models.App, error)
}
