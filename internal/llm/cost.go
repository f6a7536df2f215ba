package llm

import "unicode"

// price is USD per 1M tokens.
type price struct {
	in  float64
	out float64
}

// prices covers each provider's default model plus the alternates offered in
// setup. Local models are absent and cost nothing.
var prices = map[string]price{
	"gemini-2.5-pro":   {in: 1.25, out: 10.00},
	"gemini-2.5-flash": {in: 0.30, out: 2.50},
	"gemini-2.0-flash": {in: 0.10, out: 0.40},

	"gpt-4o":      {in: 2.50, out: 10.00},
	"gpt-4o-mini": {in: 0.15, out: 0.60},

	"claude-sonnet-4-5-20250929": {in: 3.00, out: 15.00},
	"claude-haiku-4-5-20251001":  {in: 0.80, out: 4.00},
	"claude-opus-4-6":            {in: 15.00, out: 75.00},

	"google/gemini-2.5-pro": {in: 1.25, out: 10.00},

	"MiniMax-M2.5": {in: 0.30, out: 1.20},
}

// Priced reports whether EstimateCost knows the model.
func Priced(model string) bool {
	_, ok := prices[model]
	return ok
}

// EstimateCost prices one generation call. Unknown models cost 0.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	p, ok := prices[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1e6*p.in + float64(outputTokens)/1e6*p.out
}

// EstimateTokens approximates the token count of a prompt or document. Han,
// kana and hangul characters count one token each, everything else one token
// per four characters.
func EstimateTokens(text string) int {
	var wide, narrow int
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			wide++
		} else {
			narrow++
		}
	}
	n := wide + narrow/4
	if n == 0 && text != "" {
		return 1
	}
	return n
}
