package ports

import "context"

// GenerateOptions carries per-request overrides. Nil fields fall back to
// the client's configured defaults.
type GenerateOptions struct {
	Temperature *float64
	MaxTokens   *int
}

// GenerationResult is the outcome of one successful generation call.
// ResponseTime is wall-clock seconds measured around the remote call.
type GenerationResult struct {
	ResponseText string
	Model        string
	TokensUsed   int64
	ResponseTime float64
}

// Generator produces a model response for a rendered prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (GenerationResult, error)

	// BatchGenerate applies Generate per prompt independently. A failed
	// item yields a placeholder record (error text, zero tokens, zero
	// latency) instead of aborting the batch.
	BatchGenerate(ctx context.Context, prompts []string, opts GenerateOptions) []GenerationResult
}
