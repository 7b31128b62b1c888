package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"trendcli/internal/config"
)

const (
	MeterName  = "trendcli"
	TracerName = "trendcli.catalog"
)

// TelemetryProviders holds the tracer and meter used by a run.
// Both are no-ops unless the matching output file is configured.
type TelemetryProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Logger         *slog.Logger

	metricsFile string
	traceFile   *os.File
}

// InitializeTelemetry sets up span export to cfg.TraceFile and Prometheus
// textfile export to cfg.MetricsFile.
func InitializeTelemetry(ctx context.Context, cfg config.TelemetryConfig, logger *slog.Logger) (*TelemetryProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}

	providers := &TelemetryProviders{
		Tracer: tracenoop.NewTracerProvider().Tracer(TracerName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
		Logger: logger,
	}

	if cfg.TraceFile == "" && cfg.MetricsFile == "" {
		return providers, nil
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.AppName),
		semconv.ServiceVersion(config.AppVersion),
		attribute.String("service.instance.id", GenerateTraceID()),
	)

	if cfg.TraceFile != "" {
		if err := providers.initializeTracing(cfg.TraceFile, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.MetricsFile != "" {
		if err := providers.initializeMetrics(cfg.MetricsFile, res); err != nil {
			providers.Shutdown(ctx)
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	logger.InfoContext(ctx, "Telemetry initialized",
		slog.String("trace_file", cfg.TraceFile),
		slog.String("metrics_file", cfg.MetricsFile))

	return providers, nil
}

func (p *TelemetryProviders) initializeTracing(path string, res *resource.Resource) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	p.traceFile = file
	p.TracerProvider = tp
	p.Tracer = tp.Tracer(TracerName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

func (p *TelemetryProviders) initializeMetrics(path string, res *resource.Resource) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	p.Registry = registry
	p.MeterProvider = mp
	p.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))
	p.metricsFile = path
	return nil
}

// Shutdown writes the metrics textfile, flushes spans and releases files.
func (p *TelemetryProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.Registry != nil && p.metricsFile != "" {
		if err := prometheus.WriteToTextfile(p.metricsFile, p.Registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.traceFile != nil {
		if err := p.traceFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close trace file: %w", err))
		}
		p.traceFile = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("telemetry shutdown errors: %v", errs)
	}
	return nil
}

// RunMetrics holds the instruments recorded once per enrichment run
type RunMetrics struct {
	RunsTotal       metric.Int64Counter
	RowsTotal       metric.Int64Counter
	TrendingRows    metric.Int64Gauge
	FloorPromotions metric.Int64Counter
	RunDuration     metric.Float64Histogram
}

// CreateRunMetrics creates the catalog run instruments on meter
func CreateRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	runsTotal, err := meter.Int64Counter(
		"catalog_runs",
		metric.WithDescription("Total number of enrichment runs by outcome"),
	)
	if err != nil {
		return nil, err
	}

	rowsTotal, err := meter.Int64Counter(
		"catalog_rows",
		metric.WithDescription("Total number of product rows processed"),
	)
	if err != nil {
		return nil, err
	}

	trendingRows, err := meter.Int64Gauge(
		"catalog_trending_rows",
		metric.WithDescription("Number of rows flagged trending by the last run"),
	)
	if err != nil {
		return nil, err
	}

	floorPromotions, err := meter.Int64Counter(
		"catalog_floor_promotions",
		metric.WithDescription("Rows promoted to trending by floor correction"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"catalog_run_duration",
		metric.WithDescription("Enrichment run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		RunsTotal:       runsTotal,
		RowsTotal:       rowsTotal,
		TrendingRows:    trendingRows,
		FloorPromotions: floorPromotions,
		RunDuration:     runDuration,
	}, nil
}
