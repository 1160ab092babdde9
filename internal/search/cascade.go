package search

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// Cascade tries an ordered list of strategies until one yields results. It
// never fails: when every strategy is exhausted it synthesizes direct search
// engine links so the caller always has something actionable to show.
type Cascade struct {
	strategies []Strategy
	log        zerolog.Logger
}

// NewCascade creates a cascade over the given strategies, tried in order.
func NewCascade(log zerolog.Logger, strategies ...Strategy) *Cascade {
	return &Cascade{
		strategies: strategies,
		log:        log.With().Str("component", "cascade").Logger(),
	}
}

// Search runs the cascade. A strategy that errors, returns zero results, or
// reports itself blocked simply hands off to the next one.
func (c *Cascade) Search(ctx context.Context, query string, max int) []Result {
	for _, s := range c.strategies {
		results, err := s.Search(ctx, query, max)
		if err != nil {
			c.log.Warn().Str("strategy", s.Name()).Err(err).Msg("strategy failed, advancing")
			continue
		}
		if len(results) == 0 {
			c.log.Debug().Str("strategy", s.Name()).Msg("strategy returned no results, advancing")
			continue
		}
		c.log.Info().Str("strategy", s.Name()).Int("results", len(results)).Msg("strategy succeeded")
		return results
	}

	c.log.Warn().Str("query", query).Msg("all strategies exhausted, returning search engine links")
	return EngineRedirects(query)
}

// EngineRedirects synthesizes three fixed "open this search engine" results
// linking directly to the query. This is the cascade's terminal fallback and
// holds even with zero network access.
func EngineRedirects(query string) []Result {
	encoded := url.QueryEscape(query)
	return []Result{
		{
			Title:       fmt.Sprintf("Google Search: %s", query),
			URL:         fmt.Sprintf("https://www.google.com/search?q=%s", encoded),
			Description: fmt.Sprintf("Search Google for information about '%s'. Click this link to see search results directly.", query),
		},
		{
			Title:       fmt.Sprintf("Bing Search: %s", query),
			URL:         fmt.Sprintf("https://www.bing.com/search?q=%s", encoded),
			Description: fmt.Sprintf("Search Bing for information about '%s'. Click this link to see search results directly.", query),
		},
		{
			Title:       fmt.Sprintf("DuckDuckGo Search: %s", query),
			URL:         fmt.Sprintf("https://duckduckgo.com/?q=%s", encoded),
			Description: fmt.Sprintf("Search DuckDuckGo for information about '%s'. Click this link to see search results directly.", query),
		},
	}
}
