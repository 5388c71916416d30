package adapter

import "context"

// GenerateParams bounds a single text-generation call.
type GenerateParams struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// ModelClient is the port for one-shot LLM text generation. Implementations
// make exactly one outbound call per invocation; no caching, no retries
// (retry policy belongs to the caller).
type ModelClient interface {
	// Generate returns the raw model text for the prompt, or a
	// *domain.ProviderError when the call cannot complete.
	Generate(ctx context.Context, prompt string, params GenerateParams) (string, error)

	// Name identifies the provider for logs and metrics.
	Name() string
}
