// Package runner orchestrates one experiment: render each prompt spec,
// call the generator, score the response, and persist every step.
// Execution is fully sequential; one spec completes before the next
// begins.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/emiliopalmerini/promptlab/internal/config"
	"github.com/emiliopalmerini/promptlab/internal/domain"
	"github.com/emiliopalmerini/promptlab/internal/evaluator"
	"github.com/emiliopalmerini/promptlab/internal/ports"
)

// Outcome classifies how one prompt spec ended.
type Outcome string

const (
	// OutcomeCreated means the full prompt/response/evaluation chain
	// was persisted.
	OutcomeCreated Outcome = "created"
	// OutcomeRenderFailed means the template did not render; no prompt
	// record exists for the spec.
	OutcomeRenderFailed Outcome = "render_failed"
	// OutcomeGenerationFailed means the prompt record exists but the
	// generation call failed; no response or evaluation was persisted.
	OutcomeGenerationFailed Outcome = "generation_failed"
)

// ItemResult is the terminal outcome of one prompt spec. Failures are
// terminal for the spec: the runner never retries.
type ItemResult struct {
	Index      int
	TemplateID string
	Outcome    Outcome
	PromptID   string
	ResponseID string
	Err        error
}

// Runner drives the experiment pipeline. All collaborators are injected;
// the runner holds no ambient state.
type Runner struct {
	store     ports.ResultStore
	templates ports.TemplateStore
	generator ports.Generator
	metrics   ports.MetricsExporter
	logger    *slog.Logger
}

// New creates a Runner.
func New(store ports.ResultStore, templates ports.TemplateStore, generator ports.Generator, metrics ports.MetricsExporter, logger *slog.Logger) *Runner {
	return &Runner{
		store:     store,
		templates: templates,
		generator: generator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run executes the experiment described by cfg and returns the persisted
// experiment id together with the per-spec outcomes, in configured order.
//
// Render and generation failures are isolated to their spec: the run
// logs them and moves on. A store write failure aborts the remaining run,
// since downstream records would be unreferenceable.
func (r *Runner) Run(ctx context.Context, cfg *config.Experiment) (string, []ItemResult, error) {
	snapshot, err := cfg.Snapshot()
	if err != nil {
		return "", nil, err
	}

	startedAt := time.Now().UTC()
	r.logger.Info("starting experiment", "name", cfg.Name, "prompts", len(cfg.Prompts))

	experimentID, err := r.store.CreateExperiment(ctx, &domain.Experiment{
		Name:   cfg.Name,
		Config: snapshot,
	})
	if err != nil {
		return "", nil, fmt.Errorf("create experiment: %w", err)
	}

	metrics := &ports.RunMetrics{
		ExperimentID:   experimentID,
		ExperimentName: cfg.Name,
		StartedAt:      startedAt,
	}

	outcomes := make([]ItemResult, 0, len(cfg.Prompts))
	for i, spec := range cfg.Prompts {
		r.logger.Info("processing prompt", "index", i+1, "total", len(cfg.Prompts), "template", spec.Template)

		item, err := r.processSpec(ctx, experimentID, i, spec, metrics)
		outcomes = append(outcomes, item)
		if err != nil {
			return experimentID, outcomes, err
		}
	}

	r.logger.Info("experiment completed", "name", cfg.Name, "experiment_id", experimentID)
	r.exportMetrics(ctx, metrics, outcomes)

	return experimentID, outcomes, nil
}

// processSpec runs one prompt spec to its terminal outcome. The returned
// error is non-nil only for store write failures, which abort the run.
func (r *Runner) processSpec(ctx context.Context, experimentID string, index int, spec config.PromptSpec, metrics *ports.RunMetrics) (ItemResult, error) {
	item := ItemResult{Index: index, TemplateID: spec.Template}

	rendered, err := r.templates.Render(spec.Template, spec.Variables)
	if err != nil {
		r.logger.Error("failed to render template", "template", spec.Template, "error", err)
		item.Outcome = OutcomeRenderFailed
		item.Err = err
		return item, nil
	}

	variables, err := json.Marshal(spec.Variables)
	if err != nil {
		return item, fmt.Errorf("marshal variables: %w", err)
	}

	promptID, err := r.store.CreatePrompt(ctx, &domain.Prompt{
		ExperimentID: experimentID,
		TemplateID:   spec.Template,
		PromptText:   rendered,
		Variables:    string(variables),
	})
	if err != nil {
		return item, fmt.Errorf("create prompt: %w", err)
	}
	item.PromptID = promptID

	result, err := r.generator.Generate(ctx, rendered, ports.GenerateOptions{
		Temperature: spec.Temperature,
		MaxTokens:   spec.MaxTokens,
	})
	if err != nil {
		r.logger.Error("generation failed", "template", spec.Template, "error", err)
		item.Outcome = OutcomeGenerationFailed
		item.Err = err
		return item, nil
	}
	metrics.TokensUsed += result.TokensUsed
	metrics.GenerationTime += result.ResponseTime

	responseID, err := r.store.CreateResponse(ctx, &domain.Response{
		PromptID:     promptID,
		ResponseText: result.ResponseText,
		Model:        result.Model,
		TokensUsed:   result.TokensUsed,
		ResponseTime: result.ResponseTime,
	})
	if err != nil {
		return item, fmt.Errorf("create response: %w", err)
	}
	item.ResponseID = responseID

	scores := evaluator.Evaluate(rendered, result.ResponseText, result.ResponseTime, result.TokensUsed)
	r.logger.Info("response evaluated",
		"template", spec.Template,
		"relevance", scores.Relevance,
		"efficiency", scores.Efficiency,
	)

	notes := "Automated evaluation for " + spec.Template
	if _, err := r.store.CreateEvaluation(ctx, scores.Evaluation(responseID, notes)); err != nil {
		return item, fmt.Errorf("create evaluation: %w", err)
	}

	item.Outcome = OutcomeCreated
	return item, nil
}

// exportMetrics is best-effort: a metrics failure never fails the run.
func (r *Runner) exportMetrics(ctx context.Context, metrics *ports.RunMetrics, outcomes []ItemResult) {
	metrics.CompletedAt = time.Now().UTC()
	for _, item := range outcomes {
		switch item.Outcome {
		case OutcomeCreated:
			metrics.PromptCount++
			metrics.ResponseCount++
		case OutcomeRenderFailed:
			metrics.RenderFailures++
		case OutcomeGenerationFailed:
			metrics.PromptCount++
			metrics.GenerationFailures++
		}
	}

	if err := r.metrics.ExportRunMetrics(ctx, metrics); err != nil {
		r.logger.Error("failed to export run metrics", "error", err)
	}
}
