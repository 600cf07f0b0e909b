package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"playstore-insights/config"
	"playstore-insights/pipeline"
	"playstore-insights/utils"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.InputPath, "input", cfg.InputPath, "path to the app dataset CSV")
	flag.IntVar(&cfg.TopN, "top", cfg.TopN, "rows kept in each top-N report")
	noColor := flag.Bool("no-color", false, "disable ANSI colour in report tables")
	flag.Parse()

	logger := utils.NewLogger(cfg.LogLevel)

	if err := run(ctx, cfg, logger, !*noColor); err != nil {
		logger.Error("Run failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger, color bool) error {
	logger.Info("=== Play Store Insights starting ===")
	logger.Info("Config: input: %s | top-n: %d | strip installs: %t | csv dir: %q | xlsx: %q | postgres: %t",
		cfg.InputPath, cfg.TopN, cfg.StripInstallFormatting, cfg.ReportDir, cfg.XLSXPath, cfg.PostgresEnabled)

	session, err := pipeline.Open(ctx, cfg, logger, os.Stdout, pipeline.WithColor(color))
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("[session] Release failed: %v", err)
		}
	}()

	report, err := session.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Done. %d apps across %d categories", report.TotalApps, len(report.InstallsByCategory))
	return nil
}
