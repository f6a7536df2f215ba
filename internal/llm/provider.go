package llm

import "context"

// Provider is one vendor backend able to turn a system instruction and a
// theme into a generated layout.
type Provider interface {
	// Complete runs a single non-streaming chat call.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name is the provider key used in configuration and logs.
	Name() string
}
