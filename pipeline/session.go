package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"playstore-insights/config"
	"playstore-insights/models"
	"playstore-insights/services"
	"playstore-insights/storage"
	"playstore-insights/utils"
)

// Session owns every resource a run needs. Open acquires them and Close
// releases them; callers defer Close right after a successful Open.
type Session struct {
	cfg    *config.Config
	logger *utils.Logger
	out    io.Writer

	loader    *services.Loader
	cleaner   *services.Cleaner
	reports   *services.ReportService
	presenter *services.Presenter

	exporters []storage.ReportWriter
	appStore  storage.AppWriter
	closers   []io.Closer
}

// Option customises a Session.
type Option func(*Session)

// WithColor toggles ANSI colour in the printed tables.
func WithColor(color bool) Option {
	return func(s *Session) { s.presenter.Color = color }
}

// WithAppStore replaces the configured store for the cleaned table.
func WithAppStore(w storage.AppWriter) Option {
	return func(s *Session) {
		s.appStore = w
		s.closers = append(s.closers, w)
	}
}

// Open builds the pipeline stages and acquires every configured sink.
// If any sink fails to open, the ones already acquired are released.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger, out io.Writer, opts ...Option) (s *Session, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s = &Session{
		cfg:       cfg,
		logger:    logger,
		out:       out,
		loader:    services.NewLoader(logger),
		cleaner:   services.NewCleaner(logger).WithInstallFormattingStripped(cfg.StripInstallFormatting),
		reports:   services.NewReportService(logger, cfg.TopN),
		presenter: services.NewPresenter(false),
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, s.Close())
			s = nil
		}
	}()

	for _, opt := range opts {
		opt(s)
	}

	if cfg.ReportDir != "" {
		w, err := storage.NewCSVWriter(cfg.ReportDir)
		if err != nil {
			return s, err
		}
		s.addExporter(w)
	}

	if cfg.XLSXPath != "" {
		w, err := storage.NewXLSXWriter(cfg.XLSXPath)
		if err != nil {
			return s, err
		}
		s.addExporter(w)
	}

	if cfg.PostgresEnabled && s.appStore == nil {
		retry := &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		}
		pw, err := storage.NewPostgresWriter(ctx, cfg.DSN(), retry)
		if err != nil {
			return s, err
		}
		s.appStore = pw
		s.closers = append(s.closers, pw)
	}

	return s, nil
}

func (s *Session) addExporter(w storage.ReportWriter) {
	s.exporters = append(s.exporters, w)
	s.closers = append(s.closers, w)
}

// Run executes Load → Clean → reports → print → export. The first failing
// stage aborts the run; cancellation is honoured between stages.
func (s *Session) Run(ctx context.Context) (*models.Report, error) {
	raw, err := s.loader.Load(s.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	apps, err := s.cleaner.Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("cleaner: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.appStore != nil {
		if err := s.appStore.Write(ctx, apps); err != nil {
			return nil, err
		}
		s.logger.Info("[session] Stored %d cleaned apps", len(apps))

		if reader, ok := s.appStore.(storage.AppReader); ok {
			stored, err := reader.FetchAll(ctx)
			if err != nil {
				return nil, err
			}
			if err := verifyStored(apps, stored); err != nil {
				return nil, err
			}
		}
	}

	report := s.reports.Generate(apps)

	if err := s.presenter.Print(s.out, report); err != nil {
		return nil, err
	}

	for _, w := range s.exporters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := w.WriteReport(report); err != nil {
			return nil, err
		}
	}
	if len(s.exporters) > 0 {
		s.logger.Info("[session] Exported reports to %d sink(s)", len(s.exporters))
	}

	return report, nil
}

// verifyStored checks the rows read back from the store match the cleaned
// table field by field and in order.
func verifyStored(apps, stored []*models.App) error {
	if len(stored) != len(apps) {
		return fmt.Errorf("session: store holds %d apps after writing %d", len(stored), len(apps))
	}
	for i := range apps {
		if *stored[i] != *apps[i] {
			return fmt.Errorf("session: stored app %d (%q) differs from cleaned row %q",
				i+1, stored[i].Name, apps[i].Name)
		}
	}
	return nil
}

// Close releases every acquired resource, in reverse order of acquisition.
// It is safe to call more than once.
func (s *Session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
