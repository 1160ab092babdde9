package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuckDuckGoHTMLStrategySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/html/", r.URL.Path)
		_, _ = w.Write([]byte(duckduckgoFixture))
	}))
	defer srv.Close()

	s := NewDuckDuckGoHTMLStrategy(zerolog.Nop())
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "golang", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "First Result", results[0].Title)
}

func TestDuckDuckGoHTMLStrategyTruncatesToMax(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(duckduckgoFixture))
	}))
	defer srv.Close()

	s := NewDuckDuckGoHTMLStrategy(zerolog.Nop())
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "golang", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestInstantAnswerStrategySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{
			"Heading": "Go (programming language)",
			"AbstractText": "Go is a statically typed, compiled language.",
			"AbstractURL": "https://en.wikipedia.org/wiki/Go_(programming_language)",
			"RelatedTopics": [
				{"Text": "Goroutine - A lightweight thread managed by the Go runtime.", "FirstURL": "https://example.com/goroutine"},
				{"Topics": [
					{"Text": "Channels - Typed conduits for goroutine communication.", "FirstURL": "https://example.com/channels"}
				]}
			]
		}`))
	}))
	defer srv.Close()

	s := NewInstantAnswerStrategy(zerolog.Nop())
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "go language", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Go (programming language)", results[0].Title)
	assert.Equal(t, "Go is a statically typed, compiled language.", results[0].Description)

	// Related topics, including nested groups, are walked in order.
	assert.Equal(t, "Goroutine", results[1].Title)
	assert.Equal(t, "A lightweight thread managed by the Go runtime.", results[1].Description)
	assert.Equal(t, "Channels", results[2].Title)
}

func TestInstantAnswerStrategyNoAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"AbstractText": "", "AbstractURL": "", "RelatedTopics": []}`))
	}))
	defer srv.Close()

	s := NewInstantAnswerStrategy(zerolog.Nop())
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "very specific query", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSplitTopicText(t *testing.T) {
	title, desc := splitTopicText("Goroutine - A lightweight thread.")
	assert.Equal(t, "Goroutine", title)
	assert.Equal(t, "A lightweight thread.", desc)

	title, desc = splitTopicText("No separator here")
	assert.Equal(t, "No separator here", title)
	assert.Equal(t, "No separator here", desc)
}
