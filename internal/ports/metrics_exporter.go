package ports

import (
	"context"
	"time"
)

// MetricsExporter exports run metrics to an external observability system.
type MetricsExporter interface {
	// ExportRunMetrics exports metrics for a completed experiment run.
	ExportRunMetrics(ctx context.Context, m *RunMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// RunMetrics summarizes one experiment run.
type RunMetrics struct {
	ExperimentID   string
	ExperimentName string

	PromptCount        int64
	ResponseCount      int64
	RenderFailures     int64
	GenerationFailures int64

	TokensUsed     int64
	GenerationTime float64
	StartedAt      time.Time
	CompletedAt    time.Time
}
