// Package templates loads prompt templates from disk and renders them
// against a variable mapping. Rendering is literal substitution only; no
// escaping, no control logic.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when a template id is unknown.
	ErrNotFound = errors.New("template not found")
	// ErrMissingVariable is returned when a template placeholder has no
	// binding in the variable mapping.
	ErrMissingVariable = errors.New("missing template variable")
)

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// Store maps template ids to raw template text. The id is the template
// file's basename without the .txt extension.
type Store struct {
	templates map[string]string
}

// NewStore loads every *.txt file under dir.
func NewStore(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read templates dir: %w", err)
	}

	s := &Store{templates: make(map[string]string)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", entry.Name(), err)
		}
		id := strings.TrimSuffix(entry.Name(), ".txt")
		s.templates[id] = string(raw)
	}
	return s, nil
}

// Render substitutes {name} placeholders in the template with values from
// vars. Substitution is strict: every placeholder must be bound.
func (s *Store) Render(id string, vars map[string]string) (string, error) {
	raw, ok := s.templates[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var missing string
	rendered := placeholderPattern.ReplaceAllStringFunc(raw, func(match string) string {
		key := match[1 : len(match)-1]
		value, bound := vars[key]
		if !bound {
			if missing == "" {
				missing = key
			}
			return match
		}
		return value
	})
	if missing != "" {
		return "", fmt.Errorf("%w: %s in template %s", ErrMissingVariable, missing, id)
	}

	return rendered, nil
}

// List returns the loaded template ids, sorted.
func (s *Store) List() []string {
	ids := make([]string, 0, len(s.templates))
	for id := range s.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
