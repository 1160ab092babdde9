package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// MultiProvider tries an ordered list of providers and returns the first
// successful completion.
type MultiProvider struct {
	providers []Provider
	log       zerolog.Logger
}

// NewMultiProvider creates a fallback chain over the given providers.
func NewMultiProvider(log zerolog.Logger, providers ...Provider) *MultiProvider {
	return &MultiProvider{
		providers: providers,
		log:       log.With().Str("component", "ai").Logger(),
	}
}

func (m *MultiProvider) Name() string { return "multi" }

func (m *MultiProvider) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	return m.attempt(func(p Provider) (string, error) {
		return p.Generate(ctx, prompt, opts)
	})
}

func (m *MultiProvider) GenerateWithImage(ctx context.Context, prompt, imageURL string, opts Options) (string, error) {
	return m.attempt(func(p Provider) (string, error) {
		return p.GenerateWithImage(ctx, prompt, imageURL, opts)
	})
}

func (m *MultiProvider) attempt(call func(Provider) (string, error)) (string, error) {
	if len(m.providers) == 0 {
		return "", fmt.Errorf("no providers configured")
	}

	var lastErr error
	for _, p := range m.providers {
		out, err := call(p)
		if err == nil {
			return out, nil
		}
		m.log.Warn().Str("provider", p.Name()).Err(err).Msg("provider failed, trying next")
		lastErr = err
	}
	return "", fmt.Errorf("all providers failed: %w", lastErr)
}
