package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider on top of the Gemini API. It has no
// vision-by-URL path: Gemini wants inline image bytes, and downloading remote
// images is out of scope here, so image requests fall through to the next
// provider in the chain.
type GeminiProvider struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string, log zerolog.Logger) (*GeminiProvider, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{
		client: client,
		model:  model,
		log:    log.With().Str("component", "ai").Str("provider", "Gemini").Logger(),
	}, nil
}

func (p *GeminiProvider) Name() string { return "Gemini" }

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	temp := float32(opts.Temperature)
	genConfig := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if opts.MaxTokens > 0 {
		genConfig.MaxOutputTokens = int32(opts.MaxTokens)
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty completion returned")
	}
	p.log.Debug().Str("model", model).Int("chars", len(text)).Msg("gemini completion")
	return text, nil
}

func (p *GeminiProvider) GenerateWithImage(ctx context.Context, prompt, imageURL string, opts Options) (string, error) {
	return "", fmt.Errorf("image input by URL is not supported by the Gemini provider")
}
