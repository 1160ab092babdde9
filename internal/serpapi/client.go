package serpapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	g "github.com/serpapi/google-search-results-golang"

	"github.com/amityadav/scout/internal/search"
)

// Strategy queries Google through SerpApi's documented JSON API. It is the
// most reliable acquisition path when a key is configured, and is skipped
// entirely otherwise.
type Strategy struct {
	apiKey string
	log    zerolog.Logger
}

// NewStrategy creates a SerpApi-backed search strategy.
func NewStrategy(apiKey string, log zerolog.Logger) *Strategy {
	return &Strategy{
		apiKey: apiKey,
		log:    log.With().Str("component", "serpapi").Logger(),
	}
}

func (s *Strategy) Name() string { return "serpapi" }

// Search maps SerpApi's organic_results onto search results.
func (s *Strategy) Search(ctx context.Context, query string, max int) ([]search.Result, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("SerpApi API key is not set")
	}

	parameter := map[string]string{
		"engine":        "google",
		"q":             query,
		"num":           strconv.Itoa(max),
		"google_domain": "google.com",
		"gl":            "us",
		"hl":            "en",
	}

	s.log.Debug().Str("query", query).Msg("querying SerpApi")
	gs := g.NewGoogleSearch(parameter, s.apiKey)
	results, err := gs.GetJSON()
	if err != nil {
		return nil, fmt.Errorf("serpapi search failed: %w", err)
	}

	organicResults, ok := results["organic_results"].([]interface{})
	if !ok {
		s.log.Debug().Msg("no organic_results in SerpApi response")
		return nil, nil
	}

	var out []search.Result
	for _, item := range organicResults {
		res, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		title, _ := res["title"].(string)
		link, _ := res["link"].(string)
		snippet, _ := res["snippet"].(string)

		if title == "" || link == "" {
			continue
		}

		out = append(out, search.Result{
			Title:       title,
			URL:         link,
			Description: snippet,
		})
		if len(out) >= max {
			break
		}
	}

	s.log.Debug().Int("results", len(out)).Msg("SerpApi returned organic results")
	return out, nil
}
