package domain

// ScoreSet is the output of the heuristic evaluator. Every dimension is
// always computed and lies in [0.0, 1.0].
type ScoreSet struct {
	Relevance    float64
	Accuracy     float64
	Completeness float64
	Consistency  float64
	Efficiency   float64
	Bias         float64
}

// Evaluation converts the score set into a persistable evaluation for the
// given response.
func (s ScoreSet) Evaluation(responseID, notes string) *Evaluation {
	return &Evaluation{
		ResponseID:   responseID,
		Relevance:    ptr(s.Relevance),
		Accuracy:     ptr(s.Accuracy),
		Completeness: ptr(s.Completeness),
		Consistency:  ptr(s.Consistency),
		Efficiency:   ptr(s.Efficiency),
		Bias:         ptr(s.Bias),
		Notes:        notes,
	}
}

func ptr(f float64) *float64 { return &f }
