// Package openai implements the generation port against an OpenAI-style
// chat-completions endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/emiliopalmerini/promptlab/internal/config"
	"github.com/emiliopalmerini/promptlab/internal/ports"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int64 `json:"total_tokens"`
	} `json:"usage"`
}

// Client calls a chat-completions API. The HTTP client carries a bounded
// timeout, so a hung remote call surfaces as a generation failure rather
// than stalling the run.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a generation client from configuration.
func NewClient(cfg config.OpenAI, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

// Generate sends the prompt as a single user message and returns the
// response text with token and wall-clock latency metadata.
func (c *Client) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (ports.GenerationResult, error) {
	temperature := c.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	maxTokens := c.maxTokens
	if opts.MaxTokens != nil {
		maxTokens = *opts.MaxTokens
	}

	body, err := json.Marshal(request{
		Model:       c.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return ports.GenerationResult{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return ports.GenerationResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		return ports.GenerationResult{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.GenerationResult{}, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.GenerationResult{}, fmt.Errorf("parse response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return ports.GenerationResult{}, fmt.Errorf("response contained no choices")
	}

	result := ports.GenerationResult{
		ResponseText: decoded.Choices[0].Message.Content,
		Model:        c.model,
		TokensUsed:   decoded.Usage.TotalTokens,
		ResponseTime: elapsed,
	}

	c.logger.Info("response generated",
		"model", c.model,
		"tokens", result.TokensUsed,
		"seconds", fmt.Sprintf("%.2f", result.ResponseTime),
	)
	return result, nil
}

// BatchGenerate applies Generate per prompt independently. A failed item
// yields a placeholder record instead of aborting the batch.
func (c *Client) BatchGenerate(ctx context.Context, prompts []string, opts ports.GenerateOptions) []ports.GenerationResult {
	results := make([]ports.GenerationResult, 0, len(prompts))
	for i, prompt := range prompts {
		c.logger.Info("processing prompt", "index", i+1, "total", len(prompts))

		result, err := c.Generate(ctx, prompt, opts)
		if err != nil {
			c.logger.Error("generation failed", "index", i+1, "error", err)
			result = ports.GenerationResult{
				ResponseText: "ERROR: " + err.Error(),
				Model:        c.model,
			}
		}
		results = append(results, result)
	}
	return results
}
