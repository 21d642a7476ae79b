package evaluator_test

import (
	"math"
	"strings"
	"testing"

	"github.com/emiliopalmerini/promptlab/internal/domain"
	"github.com/emiliopalmerini/promptlab/internal/evaluator"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluateScoresInRange(t *testing.T) {
	samples := []struct {
		prompt, response string
		responseTime     float64
		tokens           int64
	}{
		{"", "", 0, 0},
		{"the a an", "anything", 1.0, 10},
		{"explain gravity", "Gravity is definitely a force. " + strings.Repeat("It always pulls. ", 40), 12.0, 800},
		{"compare cats and dogs", "However, but, although, despite, conversely, contrary. On the other hand.", 3.0, 200},
		{"list steps", "1. First do this. 2. Second do that. - also consider this perspective.", 0.5, 50},
	}

	for _, s := range samples {
		scores := evaluator.Evaluate(s.prompt, s.response, s.responseTime, s.tokens)
		for name, v := range map[string]float64{
			"relevance":    scores.Relevance,
			"accuracy":     scores.Accuracy,
			"completeness": scores.Completeness,
			"consistency":  scores.Consistency,
			"efficiency":   scores.Efficiency,
			"bias":         scores.Bias,
		} {
			if v < 0.0 || v > 1.0 {
				t.Errorf("%s score %v out of range for response %q", name, v, s.response)
			}
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	prompt := "explain the water cycle"
	response := "Water evaporates, condenses, and falls as rain. This cycle repeats."

	first := evaluator.Evaluate(prompt, response, 2.5, 120)
	second := evaluator.Evaluate(prompt, response, 2.5, 120)

	if first != second {
		t.Errorf("identical inputs produced different scores: %+v vs %+v", first, second)
	}
}

func TestRelevanceFullOverlap(t *testing.T) {
	scores := evaluator.Evaluate("the cat sat", "cat sat", 1.0, 10)
	if !almostEqual(scores.Relevance, 1.0) {
		t.Errorf("expected relevance 1.0, got %v", scores.Relevance)
	}
}

func TestRelevanceNoMeaningfulPromptWords(t *testing.T) {
	scores := evaluator.Evaluate("the a an", "anything", 1.0, 10)
	if !almostEqual(scores.Relevance, 0.5) {
		t.Errorf("expected neutral relevance 0.5, got %v", scores.Relevance)
	}
}

func TestRelevancePartialOverlap(t *testing.T) {
	scores := evaluator.Evaluate("describe photosynthesis process", "photosynthesis converts light", 1.0, 10)
	// 1 of 3 meaningful prompt words appears in the response.
	if !almostEqual(scores.Relevance, 1.0/3.0) {
		t.Errorf("expected relevance 1/3, got %v", scores.Relevance)
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     float64
	}{
		{"neutral", "Water boils when heated.", 0.7},
		{"one confidence word", "This is definitely the answer.", 0.75},
		{"two hedge words", "It might perhaps rain.", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := evaluator.Evaluate("question", tt.response, 1.0, 10)
			if !almostEqual(scores.Accuracy, tt.want) {
				t.Errorf("expected accuracy %v, got %v", tt.want, scores.Accuracy)
			}
		})
	}
}

func TestCompletenessStructureBonus(t *testing.T) {
	// Same word and sentence counts; only the "First" marker differs.
	plain := evaluator.Evaluate("q", "Water freezes. Water melts. Water flows. Rivers move. Lakes rest.", 1.0, 10)
	structured := evaluator.Evaluate("q", "First freezes. Water melts. Water flows. Rivers move. Lakes rest.", 1.0, 10)

	if !almostEqual(structured.Completeness-plain.Completeness, 0.1) {
		t.Errorf("expected a flat 0.1 structure bonus, got plain=%v structured=%v",
			plain.Completeness, structured.Completeness)
	}
}

func TestConsistency(t *testing.T) {
	t.Run("no contrast words", func(t *testing.T) {
		scores := evaluator.Evaluate("q", "The sky is high. Grass is green.", 1.0, 10)
		if !almostEqual(scores.Consistency, 0.9) {
			t.Errorf("expected consistency 0.9, got %v", scores.Consistency)
		}
	})

	t.Run("three contrast words", func(t *testing.T) {
		// Single sentence, so the repetition multiplier does not apply.
		scores := evaluator.Evaluate("q", "however although despite this holds", 1.0, 10)
		if !almostEqual(scores.Consistency, 0.4) {
			t.Errorf("expected consistency 0.4, got %v", scores.Consistency)
		}
	})

	t.Run("repeated sentences penalized", func(t *testing.T) {
		scores := evaluator.Evaluate("q", "The sky is high. The sky is high.", 1.0, 10)
		// 0.9 * (1 distinct / 2 total)
		if !almostEqual(scores.Consistency, 0.45) {
			t.Errorf("expected consistency 0.45, got %v", scores.Consistency)
		}
	})
}

func TestEfficiency(t *testing.T) {
	tests := []struct {
		name         string
		responseTime float64
		tokens       int64
		want         float64
	}{
		{"fast and small", 1.0, 100, 1.0},
		{"slow and large", 6.0, 400, 0.7},
		{"worst band", 15.0, 600, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := evaluator.Evaluate("q", "r", tt.responseTime, tt.tokens)
			if !almostEqual(scores.Efficiency, tt.want) {
				t.Errorf("expected efficiency %v, got %v", tt.want, scores.Efficiency)
			}
		})
	}
}

func TestBias(t *testing.T) {
	t.Run("loaded language deducted", func(t *testing.T) {
		// "obviously" and "superior" are present; no balancing cue.
		scores := evaluator.Evaluate("q", "Obviously this one is superior.", 1.0, 10)
		if !almostEqual(scores.Bias, 0.8) {
			t.Errorf("expected bias 0.8, got %v", scores.Bias)
		}
	})

	t.Run("balancing cue credited", func(t *testing.T) {
		scores := evaluator.Evaluate("q", "Obviously this one is superior, though you may consider others.", 1.0, 10)
		if !almostEqual(scores.Bias, 0.9) {
			t.Errorf("expected bias 0.9, got %v", scores.Bias)
		}
	})
}

func TestScoreSetEvaluation(t *testing.T) {
	set := domain.ScoreSet{Relevance: 0.5, Accuracy: 0.7, Completeness: 0.6, Consistency: 0.9, Efficiency: 1.0, Bias: 0.8}
	ev := set.Evaluation("resp-1", "note")

	if ev.ResponseID != "resp-1" || ev.Notes != "note" {
		t.Fatalf("unexpected evaluation identity: %+v", ev)
	}
	if ev.Relevance == nil || *ev.Relevance != 0.5 {
		t.Errorf("relevance not carried over: %v", ev.Relevance)
	}
	if ev.Bias == nil || *ev.Bias != 0.8 {
		t.Errorf("bias not carried over: %v", ev.Bias)
	}
}
