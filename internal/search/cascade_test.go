package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amityadav/scout/internal/search"
)

type stubStrategy struct {
	name    string
	results []search.Result
	err     error
	calls   int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Search(ctx context.Context, query string, max int) ([]search.Result, error) {
	s.calls++
	return s.results, s.err
}

func TestCascadeAdvancesOnFailure(t *testing.T) {
	failing := &stubStrategy{name: "failing", err: fmt.Errorf("blocked")}
	empty := &stubStrategy{name: "empty"}
	working := &stubStrategy{name: "working", results: []search.Result{
		{Title: "Go", URL: "https://go.dev", Description: "The Go programming language"},
	}}
	unreached := &stubStrategy{name: "unreached", results: []search.Result{
		{Title: "Nope", URL: "https://example.com", Description: "should not be used"},
	}}

	c := search.NewCascade(zerolog.Nop(), failing, empty, working, unreached)
	results := c.Search(context.Background(), "golang", 5)

	require.Len(t, results, 1)
	assert.Equal(t, "Go", results[0].Title)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, empty.calls)
	assert.Equal(t, 1, working.calls)
	assert.Equal(t, 0, unreached.calls)
}

func TestCascadeExhaustedReturnsEngineLinks(t *testing.T) {
	failing := &stubStrategy{name: "failing", err: fmt.Errorf("blocked")}
	empty := &stubStrategy{name: "empty"}

	c := search.NewCascade(zerolog.Nop(), failing, empty)
	results := c.Search(context.Background(), "rare topic", 5)

	require.Len(t, results, 3)
	assert.Equal(t, "Google Search: rare topic", results[0].Title)
	assert.Equal(t, "Bing Search: rare topic", results[1].Title)
	assert.Equal(t, "DuckDuckGo Search: rare topic", results[2].Title)
	assert.Equal(t, "https://www.google.com/search?q=rare+topic", results[0].URL)
	for _, r := range results {
		assert.NotEmpty(t, r.Description)
	}
}

func TestCascadeWithNoStrategies(t *testing.T) {
	c := search.NewCascade(zerolog.Nop())
	results := c.Search(context.Background(), "anything", 5)
	require.Len(t, results, 3)
}

func TestEngineRedirectsEncodeQuery(t *testing.T) {
	results := search.EngineRedirects(`c++ "smart pointers"`)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.NotContains(t, r.URL, " ")
		assert.NotContains(t, r.URL, `"`)
	}
}
