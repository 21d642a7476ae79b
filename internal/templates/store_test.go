package templates_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/emiliopalmerini/promptlab/internal/templates"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write template %s: %v", name, err)
	}
}

func TestRenderSubstitutesAllVariables(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "summary.txt", "Summarize {topic} in {count} sentences.")

	store, err := templates.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := store.Render("summary", map[string]string{"topic": "rivers", "count": "3"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "Summarize rivers in 3 sentences."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	store, err := templates.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	_, err = store.Render("missing", nil)
	if !errors.Is(err, templates.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRenderMissingVariable(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "qa.txt", "Answer {question} about {subject}.")

	store, err := templates.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	_, err = store.Render("qa", map[string]string{"question": "why"})
	if !errors.Is(err, templates.ErrMissingVariable) {
		t.Errorf("expected ErrMissingVariable, got %v", err)
	}
}

func TestRenderLeavesNoPlaceholders(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "compare.txt", "Compare {left} with {right}. Repeat: {left}.")

	store, err := templates.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := store.Render("compare", map[string]string{"left": "tea", "right": "coffee"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "Compare tea with coffee. Repeat: tea." {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestListIgnoresNonTemplateFiles(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "b.txt", "b")
	writeTemplate(t, dir, "a.txt", "a")
	writeTemplate(t, dir, "notes.md", "ignored")

	store, err := templates.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ids := store.List()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("expected [a b], got %v", ids)
	}
}
