package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ProviderConfig holds configuration for an OpenAI-compatible provider.
type ProviderConfig struct {
	Name        string
	BaseURL     string
	APIKey      string
	TextModel   string
	VisionModel string
}

// BaseProvider implements Provider against any OpenAI-compatible
// chat-completions API.
type BaseProvider struct {
	config ProviderConfig
	client *http.Client
	log    zerolog.Logger
}

// NewGroqProvider creates a provider for the Groq API.
func NewGroqProvider(apiKey, textModel, visionModel string, log zerolog.Logger) *BaseProvider {
	if textModel == "" {
		textModel = "llama3-8b-8192"
	}
	return NewBaseProvider(ProviderConfig{
		Name:        "Groq",
		BaseURL:     "https://api.groq.com/openai/v1/chat/completions",
		APIKey:      apiKey,
		TextModel:   textModel,
		VisionModel: visionModel,
	}, log)
}

// NewBaseProvider creates a provider from explicit config.
func NewBaseProvider(config ProviderConfig, log zerolog.Logger) *BaseProvider {
	return &BaseProvider{
		config: config,
		client: &http.Client{Timeout: 90 * time.Second},
		log:    log.With().Str("component", "ai").Str("provider", config.Name).Logger(),
	}
}

func (p *BaseProvider) Name() string {
	return p.config.Name
}

// --- wire types for the chat-completions API ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []interface{} `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type textMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type visionMessage struct {
	Role    string          `json:"role"`
	Content []visionContent `json:"content"`
}

type visionContent struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate produces a text completion.
func (p *BaseProvider) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	reqBody := chatRequest{
		Model:       p.model(opts),
		Messages:    []interface{}{textMessage{Role: "user", Content: prompt}},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	return p.sendRequest(ctx, reqBody, "Generate")
}

// GenerateWithImage produces a completion about the image at imageURL using
// the configured vision model.
func (p *BaseProvider) GenerateWithImage(ctx context.Context, prompt, imgURL string, opts Options) (string, error) {
	if p.config.VisionModel == "" {
		return "", fmt.Errorf("vision model not configured for %s", p.config.Name)
	}

	reqBody := chatRequest{
		Model: p.config.VisionModel,
		Messages: []interface{}{
			visionMessage{
				Role: "user",
				Content: []visionContent{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{URL: imgURL}},
				},
			},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	return p.sendRequest(ctx, reqBody, "Vision")
}

func (p *BaseProvider) model(opts Options) string {
	if opts.Model != "" {
		return opts.Model
	}
	return p.config.TextModel
}

func (p *BaseProvider) sendRequest(ctx context.Context, reqBody chatRequest, operation string) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	p.log.Debug().Str("operation", operation).Int("status", resp.StatusCode).Msg("completion response")

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api error: %d %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion returned")
	}
	return content, nil
}
