package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"trendcli/internal/catalog"
	"trendcli/internal/config"
	"trendcli/internal/files"
	"trendcli/internal/infrastructure"
	"trendcli/internal/workbook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.ErrorContext(ctx, "Trending enrichment failed", slog.String("error", err.Error()))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// run wires the workbook store, telemetry and optional backups into one catalog run.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout io.Writer) error {
	telemetry, err := infrastructure.InitializeTelemetry(ctx, cfg.Telemetry, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.WarnContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.CreateRunMetrics(telemetry.Meter)
	if err != nil {
		return err
	}

	store := workbook.NewStore(
		workbook.WithSheet(cfg.Catalog.Sheet),
		workbook.WithLogger(logger),
	)

	opts := []catalog.Option{
		catalog.WithRand(catalog.NewRand(cfg.Catalog.Seed)),
		catalog.WithOutput(stdout),
		catalog.WithLogger(logger),
		catalog.WithTracer(telemetry.Tracer),
		catalog.WithMetrics(metrics),
	}
	if cfg.Catalog.BackupDir != "" {
		opts = append(opts, catalog.WithBackup(files.NewManager(cfg.Catalog.BackupDir, logger)))
	}

	logger.InfoContext(ctx, "Starting trending enrichment",
		slog.String("source", cfg.Catalog.SourcePath),
		slog.String("output", cfg.Catalog.OutputPath),
		slog.Float64("probability", cfg.Catalog.TrendingProbability),
		slog.Int("min_trending", cfg.Catalog.MinTrending),
		slog.String("version", config.AppVersion))

	_, err = catalog.NewRunner(store, store, opts...).Run(ctx, catalog.RunConfig{
		SourcePath: cfg.Catalog.SourcePath,
		OutputPath: cfg.Catalog.OutputPath,
		Options: catalog.Options{
			Probability: cfg.Catalog.TrendingProbability,
			MinTrending: cfg.Catalog.MinTrending,
		},
	})
	return err
}
