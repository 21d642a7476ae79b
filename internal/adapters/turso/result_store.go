package turso

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emiliopalmerini/promptlab/internal/domain"
	"github.com/emiliopalmerini/promptlab/internal/util"
)

// ResultStore implements ports.ResultStore over libSQL. All create
// operations are append-only inserts; records are never updated.
type ResultStore struct {
	db *sql.DB
}

// NewResultStore creates a ResultStore backed by db.
func NewResultStore(db *sql.DB) *ResultStore {
	return &ResultStore{db: db}
}

func (s *ResultStore) CreateExperiment(ctx context.Context, experiment *domain.Experiment) (string, error) {
	id := uuid.New().String()
	createdAt := creationTime(experiment.CreatedAt)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO experiments (id, name, config, created_at) VALUES (?, ?, ?, ?)`,
		id, experiment.Name, experiment.Config, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert experiment: %w", err)
	}
	return id, nil
}

func (s *ResultStore) CreatePrompt(ctx context.Context, prompt *domain.Prompt) (string, error) {
	id := uuid.New().String()
	createdAt := creationTime(prompt.CreatedAt)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prompts (id, experiment_id, template_id, prompt_text, variables, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, prompt.ExperimentID, prompt.TemplateID, prompt.PromptText,
		util.NullString(prompt.Variables), createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert prompt: %w", err)
	}
	return id, nil
}

func (s *ResultStore) CreateResponse(ctx context.Context, response *domain.Response) (string, error) {
	id := uuid.New().String()
	createdAt := creationTime(response.CreatedAt)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (id, prompt_id, response_text, model, tokens_used, response_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, response.PromptID, response.ResponseText, response.Model,
		response.TokensUsed, response.ResponseTime, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert response: %w", err)
	}
	return id, nil
}

func (s *ResultStore) CreateEvaluation(ctx context.Context, evaluation *domain.Evaluation) (string, error) {
	id := uuid.New().String()
	createdAt := creationTime(evaluation.CreatedAt)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, response_id, relevance_score, accuracy_score, completeness_score,
		 consistency_score, efficiency_score, bias_score, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, evaluation.ResponseID,
		util.NullFloat64(evaluation.Relevance),
		util.NullFloat64(evaluation.Accuracy),
		util.NullFloat64(evaluation.Completeness),
		util.NullFloat64(evaluation.Consistency),
		util.NullFloat64(evaluation.Efficiency),
		util.NullFloat64(evaluation.Bias),
		evaluation.Notes, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert evaluation: %w", err)
	}
	return id, nil
}

// ExperimentResults returns the full report join for one experiment,
// newest response first. The evaluation side is left-joined: responses
// without scores still appear, with nil score fields.
func (s *ResultStore) ExperimentResults(ctx context.Context, experimentID string) ([]*domain.ExperimentResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			e.name,
			p.template_id,
			p.prompt_text,
			r.response_text,
			r.model,
			r.tokens_used,
			r.response_time,
			ev.relevance_score,
			ev.accuracy_score,
			ev.completeness_score,
			ev.consistency_score,
			ev.efficiency_score,
			ev.bias_score,
			r.created_at
		FROM experiments e
		JOIN prompts p ON e.id = p.experiment_id
		JOIN responses r ON p.id = r.prompt_id
		LEFT JOIN evaluations ev ON r.id = ev.response_id
		WHERE e.id = ?
		ORDER BY r.created_at DESC
	`, experimentID)
	if err != nil {
		return nil, fmt.Errorf("query experiment results: %w", err)
	}
	defer rows.Close()

	var results []*domain.ExperimentResult
	for rows.Next() {
		var (
			res       domain.ExperimentResult
			scores    [6]sql.NullFloat64
			createdAt string
		)
		if err := rows.Scan(
			&res.ExperimentName, &res.TemplateID, &res.PromptText,
			&res.ResponseText, &res.Model, &res.TokensUsed, &res.ResponseTime,
			&scores[0], &scores[1], &scores[2], &scores[3], &scores[4], &scores[5],
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan experiment result: %w", err)
		}

		res.Relevance = util.NullFloat64ToPtr(scores[0])
		res.Accuracy = util.NullFloat64ToPtr(scores[1])
		res.Completeness = util.NullFloat64ToPtr(scores[2])
		res.Consistency = util.NullFloat64ToPtr(scores[3])
		res.Efficiency = util.NullFloat64ToPtr(scores[4])
		res.Bias = util.NullFloat64ToPtr(scores[5])
		res.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experiment results: %w", err)
	}
	return results, nil
}

// AllExperiments returns every experiment, newest first.
func (s *ResultStore) AllExperiments(ctx context.Context) ([]*domain.Experiment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, config, created_at FROM experiments ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query experiments: %w", err)
	}
	defer rows.Close()

	var experiments []*domain.Experiment
	for rows.Next() {
		var (
			exp       domain.Experiment
			cfg       sql.NullString
			createdAt string
		)
		if err := rows.Scan(&exp.ID, &exp.Name, &cfg, &createdAt); err != nil {
			return nil, fmt.Errorf("scan experiment: %w", err)
		}
		exp.Config = cfg.String
		exp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		experiments = append(experiments, &exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experiments: %w", err)
	}
	return experiments, nil
}

// TemplateComparison aggregates response metrics per template id. SQL AVG
// skips NULLs, so a missing score never drags an average toward zero.
func (s *ResultStore) TemplateComparison(ctx context.Context) ([]*domain.TemplateComparison, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			p.template_id,
			COUNT(r.id),
			AVG(r.response_time),
			AVG(r.tokens_used),
			AVG(ev.relevance_score),
			AVG(ev.accuracy_score),
			AVG(ev.completeness_score),
			AVG(ev.consistency_score),
			AVG(ev.efficiency_score),
			AVG(ev.bias_score)
		FROM prompts p
		JOIN responses r ON p.id = r.prompt_id
		LEFT JOIN evaluations ev ON r.id = ev.response_id
		GROUP BY p.template_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query template comparison: %w", err)
	}
	defer rows.Close()

	var comparisons []*domain.TemplateComparison
	for rows.Next() {
		var (
			cmp  domain.TemplateComparison
			avgs [8]sql.NullFloat64
		)
		if err := rows.Scan(
			&cmp.TemplateID, &cmp.ResponseCount,
			&avgs[0], &avgs[1], &avgs[2], &avgs[3], &avgs[4], &avgs[5], &avgs[6], &avgs[7],
		); err != nil {
			return nil, fmt.Errorf("scan template comparison: %w", err)
		}

		cmp.AvgResponseTime = util.NullFloat64ToPtr(avgs[0])
		cmp.AvgTokens = util.NullFloat64ToPtr(avgs[1])
		cmp.AvgRelevance = util.NullFloat64ToPtr(avgs[2])
		cmp.AvgAccuracy = util.NullFloat64ToPtr(avgs[3])
		cmp.AvgCompleteness = util.NullFloat64ToPtr(avgs[4])
		cmp.AvgConsistency = util.NullFloat64ToPtr(avgs[5])
		cmp.AvgEfficiency = util.NullFloat64ToPtr(avgs[6])
		cmp.AvgBias = util.NullFloat64ToPtr(avgs[7])

		comparisons = append(comparisons, &cmp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template comparison: %w", err)
	}
	return comparisons, nil
}

func creationTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
