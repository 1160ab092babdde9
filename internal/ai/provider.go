package ai

import "context"

// Options are the per-call generation parameters.
type Options struct {
	Model       string // overrides the provider's default model when set
	MaxTokens   int
	Temperature float64
}

// Provider defines the interface for generation backends. Implementations
// must signal failure distinctly from empty output: an empty completion is an
// error, never "".
type Provider interface {
	Name() string

	// Generate produces a text completion for the prompt.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)

	// GenerateWithImage produces a completion for a prompt about the image at
	// the given URL. Providers without a vision model return an error.
	GenerateWithImage(ctx context.Context, prompt, imageURL string, opts Options) (string, error)
}
