package domain

import "time"

// Experiment is one invocation of the pipeline over a list of prompt
// specifications. Config holds the configuration document serialized
// verbatim at run time, for reproducibility; the store never reparses it.
type Experiment struct {
	ID        string
	Name      string
	Config    string
	CreatedAt time.Time
}

// Prompt is a rendered prompt persisted before generation. Variables holds
// the mapping used to render the template, serialized for auditability.
type Prompt struct {
	ID           string
	ExperimentID string
	TemplateID   string
	PromptText   string
	Variables    string
	CreatedAt    time.Time
}

// Response is the generation output for a prompt. Created only when the
// generation call succeeds.
type Response struct {
	ID           string
	PromptID     string
	ResponseText string
	Model        string
	TokensUsed   int64
	ResponseTime float64
	CreatedAt    time.Time
}

// Evaluation holds the six heuristic scores for a response. Scores are
// nullable: a missing dimension is legal and excluded from aggregates.
type Evaluation struct {
	ID           string
	ResponseID   string
	Relevance    *float64
	Accuracy     *float64
	Completeness *float64
	Consistency  *float64
	Efficiency   *float64
	Bias         *float64
	Notes        string
	CreatedAt    time.Time
}
