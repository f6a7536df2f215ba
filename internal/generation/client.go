// Package generation sends a resolved instruction and a theme to the
// configured model and returns the raw response text.
package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ziadkadry99/layoutgen/internal/llm"
)

const userPromptFormat = "Please generate content for the following theme based on the system instructions: \"%s\""

// ErrEmptyResponse means the model answered with no text.
var ErrEmptyResponse = errors.New("model returned an empty response")

// GenerationError wraps any failure of the remote call. Its message is the
// cause's message, unchanged.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string { return e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

// Client issues one completion per call. It never retries.
type Client struct {
	provider  llm.Provider
	model     string
	maxTokens int
	logger    *slog.Logger
}

// NewClient creates a Client over provider. A nil logger uses slog.Default.
func NewClient(provider llm.Provider, model string, maxTokens int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		provider:  provider,
		model:     model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// UserPrompt returns the user message sent for theme.
func UserPrompt(theme string) string {
	return fmt.Sprintf(userPromptFormat, theme)
}

// Generate asks the model for content about theme under instruction.
func (c *Client) Generate(ctx context.Context, instruction, theme string, webSearch bool) (string, error) {
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: instruction},
			{Role: llm.RoleUser, Content: UserPrompt(theme)},
		},
		MaxTokens: c.maxTokens,
		WebSearch: webSearch,
	})
	if err != nil {
		return "", &GenerationError{Provider: c.provider.Name(), Err: err}
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", &GenerationError{Provider: c.provider.Name(), Err: ErrEmptyResponse}
	}

	model := resp.Model
	if model == "" {
		model = c.model
	}
	inputTokens, outputTokens := resp.InputTokens, resp.OutputTokens
	if inputTokens == 0 {
		inputTokens = llm.EstimateTokens(instruction) + llm.EstimateTokens(theme)
	}
	if outputTokens == 0 {
		outputTokens = llm.EstimateTokens(resp.Content)
	}
	c.logger.Debug("generation finished",
		"provider", c.provider.Name(),
		"model", model,
		"input_tokens", inputTokens,
		"output_tokens", outputTokens,
		"cost_usd", llm.EstimateCost(model, inputTokens, outputTokens),
		"finish_reason", resp.FinishReason,
	)

	return resp.Content, nil
}
