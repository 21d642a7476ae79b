package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emiliopalmerini/promptlab/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exp.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadExperiment(t *testing.T) {
	path := writeConfig(t, `
experiment_name: template-comparison
model: gpt-4o-mini
prompts:
  - template: summary
    variables:
      topic: rivers
    temperature: 0.2
    max_tokens: 200
  - template: qa
`)

	exp, err := config.LoadExperiment(path)
	if err != nil {
		t.Fatalf("LoadExperiment failed: %v", err)
	}

	if exp.Name != "template-comparison" {
		t.Errorf("expected name template-comparison, got %q", exp.Name)
	}
	if exp.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %q", exp.Model)
	}
	if len(exp.Prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(exp.Prompts))
	}

	first := exp.Prompts[0]
	if first.Template != "summary" || first.Variables["topic"] != "rivers" {
		t.Errorf("unexpected first prompt: %+v", first)
	}
	if first.Temperature == nil || *first.Temperature != 0.2 {
		t.Errorf("expected temperature override 0.2, got %v", first.Temperature)
	}
	if first.MaxTokens == nil || *first.MaxTokens != 200 {
		t.Errorf("expected max_tokens override 200, got %v", first.MaxTokens)
	}

	second := exp.Prompts[1]
	if second.Temperature != nil || second.MaxTokens != nil {
		t.Errorf("expected no overrides on second prompt, got %+v", second)
	}
}

func TestLoadExperimentValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "prompts:\n  - template: summary\n",
			wantErr: "experiment_name is required",
		},
		{
			name:    "no prompts",
			content: "experiment_name: empty\n",
			wantErr: "at least one prompt is required",
		},
		{
			name:    "prompt without template",
			content: "experiment_name: bad\nprompts:\n  - variables:\n      a: b\n",
			wantErr: "template is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadExperiment(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	exp := &config.Experiment{
		Name:    "snap",
		Prompts: []config.PromptSpec{{Template: "summary", Variables: map[string]string{"topic": "x"}}},
	}

	snapshot, err := exp.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !strings.Contains(snapshot, `"experiment_name":"snap"`) {
		t.Errorf("snapshot missing experiment name: %s", snapshot)
	}
	if !strings.Contains(snapshot, `"template":"summary"`) {
		t.Errorf("snapshot missing prompt spec: %s", snapshot)
	}
}
