package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptSpec is one configured unit of work: a template id plus the
// variables to render it with, and optional generation overrides.
type PromptSpec struct {
	Template    string            `yaml:"template" json:"template"`
	Variables   map[string]string `yaml:"variables" json:"variables,omitempty"`
	Temperature *float64          `yaml:"temperature" json:"temperature,omitempty"`
	MaxTokens   *int              `yaml:"max_tokens" json:"max_tokens,omitempty"`
}

// Experiment describes one experiment run: a name, an optional model
// override, and an ordered list of prompt specifications. Order is
// significant and preserved.
type Experiment struct {
	Name    string       `yaml:"experiment_name" json:"experiment_name"`
	Model   string       `yaml:"model" json:"model,omitempty"`
	Prompts []PromptSpec `yaml:"prompts" json:"prompts"`
}

// LoadExperiment reads and validates an experiment document from a YAML
// file.
func LoadExperiment(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read experiment config: %w", err)
	}

	var exp Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("parse experiment config %s: %w", path, err)
	}
	if err := exp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment config %s: %w", path, err)
	}
	return &exp, nil
}

// Validate checks the document once at load time so the runner never sees
// a malformed configuration.
func (e *Experiment) Validate() error {
	if e.Name == "" {
		return errors.New("experiment_name is required")
	}
	if len(e.Prompts) == 0 {
		return errors.New("at least one prompt is required")
	}
	for i, p := range e.Prompts {
		if p.Template == "" {
			return fmt.Errorf("prompt %d: template is required", i+1)
		}
	}
	return nil
}

// Snapshot serializes the document for verbatim storage on the experiment
// record.
func (e *Experiment) Snapshot() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal experiment config: %w", err)
	}
	return string(data), nil
}
