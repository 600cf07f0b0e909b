package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"playstore-insights/models"
	"playstore-insights/utils"
)

const (
	insertBatchSize = 50
	appColumns      = 8
)

// appRow mirrors one row of the apps table.
type appRow struct {
	ID       int64   `db:"id"`
	Name     string  `db:"name"`
	Category string  `db:"category"`
	Rating   float64 `db:"rating"`
	Reviews  int64   `db:"reviews"`
	Size     string  `db:"size"`
	Installs int64   `db:"installs"`
	Type     string  `db:"type"`
	Price    float64 `db:"price"`
}

func (r appRow) toModel() *models.App {
	return &models.App{
		Name:     r.Name,
		Category: r.Category,
		Rating:   r.Rating,
		Reviews:  r.Reviews,
		Size:     r.Size,
		Installs: r.Installs,
		Type:     r.Type,
		Price:    r.Price,
	}
}

// PostgresWriter persists the cleaned app table to PostgreSQL.
type PostgresWriter struct {
	db *sqlx.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the ping with
// back-off, runs schema migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	err = retry.Do(ctx, "postgres-ping", func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS apps (
			id        SERIAL PRIMARY KEY,
			name      TEXT             NOT NULL,
			category  TEXT             NOT NULL,
			rating    DOUBLE PRECISION NOT NULL,
			reviews   BIGINT           NOT NULL,
			size      TEXT             NOT NULL,
			installs  BIGINT           NOT NULL,
			type      VARCHAR(16)      NOT NULL,
			price     DOUBLE PRECISION NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_apps_category ON apps(category);
		CREATE INDEX IF NOT EXISTS idx_apps_installs ON apps(installs);
		CREATE INDEX IF NOT EXISTS idx_apps_price    ON apps(price);
	`)
	return err
}

// Write replaces the table contents with apps, in one transaction.
func (pw *PostgresWriter) Write(ctx context.Context, apps []*models.App) error {
	tx, err := pw.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM apps"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(apps); i += insertBatchSize {
		end := min(i+insertBatchSize, len(apps))
		query, args := buildInsert(apps[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// buildInsert renders one multi-row INSERT for batch with positional args.
func buildInsert(batch []*models.App) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*appColumns)

	for idx, a := range batch {
		base := idx * appColumns
		placeholders := make([]string, appColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			a.Name, a.Category, a.Rating, a.Reviews, a.Size, a.Installs, a.Type, a.Price)
	}

	query := fmt.Sprintf(
		"INSERT INTO apps (name, category, rating, reviews, size, installs, type, price) VALUES %s",
		strings.Join(valueStrings, ","))
	return query, valueArgs
}

// FetchAll retrieves every stored app in insertion order.
func (pw *PostgresWriter) FetchAll(ctx context.Context) ([]*models.App, error) {
	var rows []appRow
	err := pw.db.SelectContext(ctx, &rows, `
		SELECT id, name, category, rating, reviews, size, installs, type, price
		FROM apps
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}

	apps := make([]*models.App, 0, len(rows))
	for _, r := range rows {
		apps = append(apps, r.toModel())
	}
	return apps, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
