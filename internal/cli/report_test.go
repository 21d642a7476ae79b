package cli

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emiliopalmerini/promptlab/internal/domain"
)

func float64Ptr(v float64) *float64 { return &v }

func TestExportResultsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	results := []*domain.ExperimentResult{
		{
			ExperimentName: "exp",
			TemplateID:     "summary",
			PromptText:     "Summarize, please.",
			ResponseText:   "A summary.",
			Model:          "gpt-3.5-turbo",
			TokensUsed:     42,
			ResponseTime:   1.5,
			Relevance:      float64Ptr(0.8),
			CreatedAt:      time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	if err := exportResultsCSV(path, results); err != nil {
		t.Fatalf("exportResultsCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d rows", len(rows))
	}

	if rows[0][0] != "experiment_name" || rows[0][7] != "relevance" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	row := rows[1]
	if row[1] != "summary" || row[5] != "42" || row[6] != "1.5" {
		t.Errorf("unexpected row values: %v", row)
	}
	if row[7] != "0.8" {
		t.Errorf("expected relevance 0.8, got %q", row[7])
	}
	// Missing scores export as empty cells, not zeros.
	if row[8] != "" {
		t.Errorf("expected empty accuracy cell, got %q", row[8])
	}
	if row[13] != "2024-03-01T12:00:00Z" {
		t.Errorf("unexpected created_at: %q", row[13])
	}
}

func TestExportComparisonCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comparison.csv")

	comparisons := []*domain.TemplateComparison{
		{
			TemplateID:    "qa",
			ResponseCount: 3,
			AvgTokens:     float64Ptr(120),
			AvgRelevance:  float64Ptr(0.75),
		},
	}

	if err := exportComparisonCSV(path, comparisons); err != nil {
		t.Fatalf("exportComparisonCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open export: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d rows", len(rows))
	}

	row := rows[1]
	if row[0] != "qa" || row[1] != "3" {
		t.Errorf("unexpected row values: %v", row)
	}
	if row[3] != "120" || row[4] != "0.75" {
		t.Errorf("unexpected averages: %v", row)
	}
	if row[2] != "" {
		t.Errorf("expected empty avg_response_time cell, got %q", row[2])
	}
}

func TestFmtScore(t *testing.T) {
	if got := fmtScore(nil); got != "-" {
		t.Errorf("expected - for nil score, got %q", got)
	}
	if got := fmtScore(float64Ptr(0.456)); got != "0.46" {
		t.Errorf("expected 0.46, got %q", got)
	}
}
