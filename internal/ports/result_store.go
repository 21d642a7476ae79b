package ports

import (
	"context"

	"github.com/emiliopalmerini/promptlab/internal/domain"
)

// ResultStore persists experiment records and answers report queries.
// Create operations are append-only; records are never updated after
// insert. Each create returns the identity of the new record.
type ResultStore interface {
	CreateExperiment(ctx context.Context, experiment *domain.Experiment) (string, error)
	CreatePrompt(ctx context.Context, prompt *domain.Prompt) (string, error)
	CreateResponse(ctx context.Context, response *domain.Response) (string, error)
	CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) (string, error)

	// ExperimentResults returns the full join for one experiment, ordered
	// by response creation time descending.
	ExperimentResults(ctx context.Context, experimentID string) ([]*domain.ExperimentResult, error)
	// AllExperiments returns every experiment, newest first.
	AllExperiments(ctx context.Context) ([]*domain.Experiment, error)
	// TemplateComparison aggregates response metrics grouped by template
	// id. Null scores are excluded from the averages.
	TemplateComparison(ctx context.Context) ([]*domain.TemplateComparison, error)
}
