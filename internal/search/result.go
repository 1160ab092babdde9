package search

import "context"

// Result is a single search result from any strategy. Source and Timestamp
// are populated by news searches only.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// PlaceholderTitle is what strategies emit when a result carries no title.
// The normalizer drops records that still have it.
const PlaceholderTitle = "No title"

// Strategy is a single self-contained method of acquiring search results.
// Implementations return whatever they could extract; an error or an empty
// slice makes the cascade advance to the next strategy.
type Strategy interface {
	// Name returns the strategy identifier (e.g. "google", "serpapi")
	Name() string

	// Search returns up to max results for the query.
	Search(ctx context.Context, query string, max int) ([]Result, error)
}
