package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"trendcli/internal/infrastructure"
)

// TableLoader reads a table from path.
type TableLoader interface {
	LoadTable(ctx context.Context, path string) (*Table, error)
}

// TableWriter persists a table to path, replacing any existing file.
type TableWriter interface {
	WriteTable(ctx context.Context, path string, t *Table) error
}

// Backuper copies the file at path somewhere safe before it is overwritten.
type Backuper interface {
	Backup(ctx context.Context, path string) (string, error)
}

// RunConfig describes one enrichment run.
type RunConfig struct {
	SourcePath string
	OutputPath string
	Options    Options
}

// Runner drives load, enrich, persist and report.
type Runner struct {
	loader   TableLoader
	writer   TableWriter
	backuper Backuper
	rng      *rand.Rand
	reporter *Reporter
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *infrastructure.RunMetrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithRand sets the random source; use NewRand with a fixed seed for reproducible runs.
func WithRand(rng *rand.Rand) Option {
	return func(r *Runner) { r.rng = rng }
}

// WithOutput redirects the progress lines, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.reporter = NewReporter(w) }
}

// WithLogger sets the structured logger, the global application logger by default.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithTracer sets the tracer for the run spans. Spans are dropped by default.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// WithMetrics records run counters and durations on metrics.
func WithMetrics(metrics *infrastructure.RunMetrics) Option {
	return func(r *Runner) { r.metrics = metrics }
}

// WithBackup copies the output file before it is overwritten.
func WithBackup(b Backuper) Option {
	return func(r *Runner) { r.backuper = b }
}

// NewRunner creates a runner over the given loader/writer pair.
func NewRunner(loader TableLoader, writer TableWriter, opts ...Option) *Runner {
	r := &Runner{
		loader:   loader,
		writer:   writer,
		reporter: NewReporter(os.Stdout),
		logger:   infrastructure.GetLogger(),
		tracer:   tracenoop.NewTracerProvider().Tracer(infrastructure.TracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = NewRand(0)
	}
	return r
}

// Run enriches cfg.SourcePath and writes the result to cfg.OutputPath.
// When the trending column already exists nothing is written.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.OutputPath == "" {
		cfg.OutputPath = cfg.SourcePath
	}

	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "catalog.run",
		trace.WithAttributes(
			attribute.String("catalog.source_path", cfg.SourcePath),
			attribute.String("catalog.output_path", cfg.OutputPath),
			attribute.Float64("catalog.probability", cfg.Options.Probability),
			attribute.Int("catalog.min_trending", cfg.Options.MinTrending),
		))
	defer span.End()

	res, err := r.run(ctx, cfg)

	outcome := "enriched"
	switch {
	case err != nil:
		outcome = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case res.Skipped:
		outcome = "skipped"
	}
	span.SetAttributes(attribute.String("catalog.outcome", outcome))
	r.recordMetrics(ctx, res, outcome, time.Since(start))

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Runner) run(ctx context.Context, cfg RunConfig) (*Result, error) {
	loadCtx, loadSpan := r.tracer.Start(ctx, "catalog.load")
	table, err := r.loader.LoadTable(loadCtx, cfg.SourcePath)
	loadSpan.End()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.SourcePath, err)
	}

	r.logger.DebugContext(ctx, "Table loaded",
		slog.String("path", cfg.SourcePath),
		slog.String("sheet", table.Sheet),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))

	if table.HasColumn(TrendingColumn) {
		r.reporter.AlreadyEnriched()
		r.logger.InfoContext(ctx, "Trending column present, skipping",
			slog.String("path", cfg.SourcePath))
		return &Result{Skipped: true, Total: table.Len(), FloorMet: true}, nil
	}

	r.reporter.Reading(cfg.SourcePath)

	_, enrichSpan := r.tracer.Start(ctx, "catalog.enrich")
	res := Enrich(table, r.rng, cfg.Options)
	enrichSpan.SetAttributes(
		attribute.Int("catalog.rows", res.Total),
		attribute.Int("catalog.sampled", res.Sampled),
		attribute.Int("catalog.promoted", res.Promoted),
	)
	enrichSpan.End()

	r.reporter.Added(res.Total)
	if res.FloorAttempted {
		r.reporter.FloorEnsured(cfg.Options.MinTrending)
	}
	if !res.FloorMet {
		r.logger.WarnContext(ctx, "Trending floor not met, too few non-trending rows to promote",
			slog.Int("rows", res.Total),
			slog.Int("trending", res.Trending),
			slog.Int("min_trending", cfg.Options.MinTrending))
	}

	if r.backuper != nil {
		backupPath, err := r.backuper.Backup(ctx, cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to back up %s: %w", cfg.OutputPath, err)
		}
		if backupPath != "" {
			r.logger.InfoContext(ctx, "Backed up workbook",
				slog.String("path", cfg.OutputPath),
				slog.String("backup", backupPath))
		}
	}

	writeCtx, writeSpan := r.tracer.Start(ctx, "catalog.write")
	err = r.writer.WriteTable(writeCtx, cfg.OutputPath, table)
	writeSpan.End()
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", cfg.OutputPath, err)
	}
	r.reporter.Saved(cfg.OutputPath)

	r.reporter.Summary(res)
	r.logger.InfoContext(ctx, "Catalog enriched",
		slog.String("path", cfg.OutputPath),
		slog.Int("rows", res.Total),
		slog.Int("sampled", res.Sampled),
		slog.Int("promoted", res.Promoted),
		slog.Int("trending", res.Trending))

	return &res, nil
}

func (r *Runner) recordMetrics(ctx context.Context, res *Result, outcome string, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}

	r.metrics.RunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	r.metrics.RunDuration.Record(ctx, elapsed.Seconds())
	if res == nil || res.Skipped {
		return
	}
	r.metrics.RowsTotal.Add(ctx, int64(res.Total))
	r.metrics.TrendingRows.Record(ctx, int64(res.Trending))
	r.metrics.FloorPromotions.Add(ctx, int64(res.Promoted))
}
