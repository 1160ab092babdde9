package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	GroqAPIKey   string
	GeminiAPIKey string
	SerpAPIKey   string

	Provider           string // "groq" or "gemini"
	Model              string
	VisionModel        string
	NumResults         int
	MaxTokens          int
	SummaryLength      int // target summary length in words
	Temperature        float64
	ComprehensionGrade int    // 1-15
	SearchType         string // "web" or "news"
	Humanize           bool

	SkipDomains []string

	BrowserRemoteURL string // optional CDP endpoint; empty means launch locally
	Port             int
	Debug            bool
}

// Load loads configuration from environment variables
func Load() Config {
	return Config{
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		SerpAPIKey:         os.Getenv("SERPAPI_API_KEY"),
		Provider:           getEnv("AI_PROVIDER", "groq"),
		Model:              getEnv("MODEL", "llama3-8b-8192"),
		VisionModel:        getEnv("VISION_MODEL", "llama-3.2-11b-vision-preview"),
		NumResults:         getEnvInt("NUM_RESULTS", 10),
		MaxTokens:          getEnvInt("MAX_TOKENS", 4096),
		SummaryLength:      getEnvInt("SUMMARY_LENGTH", 300),
		Temperature:        getEnvFloat("TEMPERATURE", 0.0),
		ComprehensionGrade: getEnvInt("COMPREHENSION_GRADE", 8),
		SearchType:         getEnv("SEARCH_TYPE", "web"),
		Humanize:           getEnvBool("HUMANIZE", false),
		SkipDomains:        getEnvList("SKIP_DOMAINS", []string{"reddit.com"}),
		BrowserRemoteURL:   os.Getenv("BROWSER_REMOTE_URL"),
		Port:               getEnvInt("PORT", 5000),
		Debug:              getEnvBool("DEBUG", false),
	}
}

// Validate checks the invariants that must hold before the pipeline is built.
// A missing generation credential fails here, at startup, not per-request.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq":
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when AI_PROVIDER=groq")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when AI_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unsupported AI_PROVIDER: %s (supported: groq, gemini)", c.Provider)
	}
	if c.ComprehensionGrade < 1 || c.ComprehensionGrade > 15 {
		return fmt.Errorf("COMPREHENSION_GRADE must be between 1 and 15, got %d", c.ComprehensionGrade)
	}
	if c.SearchType != "web" && c.SearchType != "news" {
		return fmt.Errorf(`SEARCH_TYPE must be "web" or "news", got %q`, c.SearchType)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
