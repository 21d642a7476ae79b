package domain

import "time"

// ExperimentResult is one row of the experiment report join:
// experiment -> prompt -> response, with the evaluation left-joined in.
type ExperimentResult struct {
	ExperimentName string
	TemplateID     string
	PromptText     string
	ResponseText   string
	Model          string
	TokensUsed     int64
	ResponseTime   float64
	Relevance      *float64
	Accuracy       *float64
	Completeness   *float64
	Consistency    *float64
	Efficiency     *float64
	Bias           *float64
	CreatedAt      time.Time
}

// TemplateComparison aggregates responses per template id. Averages are
// nil when no non-null values exist for that column.
type TemplateComparison struct {
	TemplateID      string
	ResponseCount   int64
	AvgResponseTime *float64
	AvgTokens       *float64
	AvgRelevance    *float64
	AvgAccuracy     *float64
	AvgCompleteness *float64
	AvgConsistency  *float64
	AvgEfficiency   *float64
	AvgBias         *float64
}
