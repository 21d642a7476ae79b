// Package otel exports run metrics to an OTEL Collector over OTLP/gRPC.
package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/emiliopalmerini/promptlab/internal/ports"
)

const (
	serviceName    = "promptlab"
	serviceVersion = "1.0.0"
)

// Exporter exports run metrics to an OTEL Collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	meter         metric.Meter
	promptsTotal  metric.Int64Counter
	failuresTotal metric.Int64Counter
	tokensTotal   metric.Int64Counter
	durationHist  metric.Float64Histogram
	runsTotal     metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	promptsTotal, err := meter.Int64Counter(
		"promptlab_run_prompts_total",
		metric.WithDescription("Prompts processed per run"),
		metric.WithUnit("{prompt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating prompts counter: %w", err)
	}

	failuresTotal, err := meter.Int64Counter(
		"promptlab_run_failures_total",
		metric.WithDescription("Render and generation failures per run"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failures counter: %w", err)
	}

	tokensTotal, err := meter.Int64Counter(
		"promptlab_run_tokens_total",
		metric.WithDescription("Tokens consumed by generation calls"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tokens counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"promptlab_run_generation_seconds",
		metric.WithDescription("Cumulative generation time per run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	runsTotal, err := meter.Int64Counter(
		"promptlab_runs_total",
		metric.WithDescription("Completed experiment runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	return &Exporter{
		provider:      provider,
		meter:         meter,
		promptsTotal:  promptsTotal,
		failuresTotal: failuresTotal,
		tokensTotal:   tokensTotal,
		durationHist:  durationHist,
		runsTotal:     runsTotal,
	}, nil
}

// ExportRunMetrics exports metrics for a completed experiment run.
func (e *Exporter) ExportRunMetrics(ctx context.Context, m *ports.RunMetrics) error {
	opt := metric.WithAttributes(
		attribute.String("experiment_id", m.ExperimentID),
		attribute.String("experiment_name", m.ExperimentName),
	)

	e.promptsTotal.Add(ctx, m.PromptCount, opt)
	e.failuresTotal.Add(ctx, m.RenderFailures+m.GenerationFailures, opt)
	e.tokensTotal.Add(ctx, m.TokensUsed, opt)
	e.durationHist.Record(ctx, m.GenerationTime, opt)
	e.runsTotal.Add(ctx, 1, opt)

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
