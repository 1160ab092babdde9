package fx

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/amityadav/scout/internal/agent"
	"github.com/amityadav/scout/internal/ai"
	"github.com/amityadav/scout/internal/config"
	"github.com/amityadav/scout/internal/fetcher"
	"github.com/amityadav/scout/internal/search"
	"github.com/amityadav/scout/internal/serpapi"
	"github.com/amityadav/scout/internal/summary"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides validated application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(LoadConfig),
)

// LoggerModule provides the application logger
var LoggerModule = fx.Module("logger",
	fx.Provide(NewLogger),
)

// AIModule provides the generation provider chain
var AIModule = fx.Module("ai",
	fx.Provide(NewAIProvider),
)

// SearchModule provides the strategy cascade, news strategy, and normalizer
var SearchModule = fx.Module("search",
	fx.Provide(
		NewCascade,
		NewNewsStrategy,
		NewNormalizer,
	),
)

// PipelineModule provides fetching, summarization, and the orchestrating agent
var PipelineModule = fx.Module("pipeline",
	fx.Provide(
		NewFetcher,
		NewSummarizer,
		agent.New,
	),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// LoadConfig loads configuration and fails startup on invalid settings.
func LoadConfig() (config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NewLogger creates the root logger. Debug mode lowers the level.
func NewLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// NewAIProvider builds the provider chain. The configured provider goes
// first; any other provider with a key becomes its fallback.
func NewAIProvider(cfg config.Config, log zerolog.Logger) (ai.Provider, error) {
	var providers []ai.Provider

	if cfg.Provider == "gemini" {
		gemini, err := ai.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.Model, log)
		if err != nil {
			return nil, err
		}
		providers = append(providers, gemini)
		if cfg.GroqAPIKey != "" {
			providers = append(providers, ai.NewGroqProvider(cfg.GroqAPIKey, "", cfg.VisionModel, log))
		}
	} else {
		providers = append(providers, ai.NewGroqProvider(cfg.GroqAPIKey, cfg.Model, cfg.VisionModel, log))
		if cfg.GeminiAPIKey != "" {
			gemini, err := ai.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, "", log)
			if err != nil {
				return nil, err
			}
			providers = append(providers, gemini)
		}
	}

	if len(providers) == 1 {
		log.Info().Str("provider", providers[0].Name()).Msg("AI provider initialized")
		return providers[0], nil
	}
	log.Info().Int("providers", len(providers)).Msg("AI provider chain initialized")
	return ai.NewMultiProvider(log, providers...), nil
}

// NewCascade assembles the web search cascade in reliability order. The
// browser strategy registers only when a controllable browser is actually
// present; the SerpApi strategy only when a key is configured.
func NewCascade(cfg config.Config, log zerolog.Logger) *search.Cascade {
	var strategies []search.Strategy

	if search.BrowserAvailable(cfg.BrowserRemoteURL, log) {
		strategies = append(strategies, search.NewBrowserStrategy(cfg.BrowserRemoteURL, log))
	}

	strategies = append(strategies,
		search.NewGoogleStrategy(log),
		search.NewDuckDuckGoHTMLStrategy(log),
	)

	if cfg.SerpAPIKey != "" {
		strategies = append(strategies, serpapi.NewStrategy(cfg.SerpAPIKey, log))
	}

	strategies = append(strategies, search.NewInstantAnswerStrategy(log))

	log.Info().Int("strategies", len(strategies)).Msg("search cascade initialized")
	return search.NewCascade(log, strategies...)
}

// NewNewsStrategy provides the Bing news strategy.
func NewNewsStrategy(log zerolog.Logger) search.Strategy {
	return search.NewNewsStrategy(log)
}

// NewNormalizer provides the result normalizer with configured skip domains.
func NewNormalizer(cfg config.Config, log zerolog.Logger) *search.Normalizer {
	return search.NewNormalizer(log, cfg.SkipDomains)
}

// NewFetcher provides the content fetcher.
func NewFetcher(log zerolog.Logger) *fetcher.Fetcher {
	return fetcher.New(log)
}

// NewSummarizer provides the summarizer on top of the provider chain.
func NewSummarizer(provider ai.Provider, log zerolog.Logger) *summary.Summarizer {
	return summary.New(provider, log)
}
