package generation

import "github.com/ziadkadry99/layoutgen/internal/llm"

// Estimate is the dry-run cost of one generation request.
type Estimate struct {
	Model        string
	InputTokens  int
	OutputTokens int // upper bound: the configured max tokens
	CostUSD      float64
}

// EstimateRequest prices a single call for theme under instruction without
// contacting the provider. Models missing from the price table cost 0.
func EstimateRequest(model, instruction, theme string, maxTokens int) Estimate {
	in := llm.EstimateTokens(instruction) + llm.EstimateTokens(UserPrompt(theme))
	return Estimate{
		Model:        model,
		InputTokens:  in,
		OutputTokens: maxTokens,
		CostUSD:      llm.EstimateCost(model, in, maxTokens),
	}
}
