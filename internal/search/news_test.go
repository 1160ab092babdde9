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

const newsFixture = `
<html><body>
<div class="news-card">
  <a class="title" href="https://news.example.co.uk/economy/rates">Central Bank Holds Rates</a>
  <div class="snippet">The central bank left interest rates unchanged on Thursday.</div>
  <div class="source">Example News</div>
  <span aria-label="2h ago">2h</span>
</div>
<div class="news-card">
  <a class="title" href="/news/apiclick.aspx?url=local">Relative Link Story</a>
  <div class="snippet">A story behind a tracking redirect.</div>
</div>
<div class="news-card">
  <div class="snippet">Card without a link is dropped.</div>
</div>
</body></html>`

func TestNewsStrategySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/news/search", r.URL.Path)
		assert.Equal(t, "fed rates", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(newsFixture))
	}))
	defer srv.Close()

	s := NewNewsStrategy(zerolog.Nop())
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "fed rates", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Central Bank Holds Rates", results[0].Title)
	assert.Equal(t, "https://news.example.co.uk/economy/rates", results[0].URL)
	assert.Equal(t, "The central bank left interest rates unchanged on Thursday.", results[0].Description)
	assert.Equal(t, "example.co.uk", results[0].Source)
	assert.Equal(t, "2h ago", results[0].Timestamp)

	// Relative links are resolved against the page origin.
	assert.Equal(t, srv.URL+"/news/apiclick.aspx?url=local", results[1].URL)
	assert.Empty(t, results[1].Timestamp)
}

func TestNewsStrategyEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>no cards here</body></html>"))
	}))
	defer srv.Close()

	s := NewNewsStrategy(zerolog.Nop())
	s.baseURL = srv.URL

	results, err := s.Search(context.Background(), "nothing", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://news.example.co.uk/story", "example.co.uk"},
		{"https://www.example.com/story", "example.com"},
		{"https://example.com", "example.com"},
		{"not a url", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RegistrableDomain(tt.rawURL), tt.rawURL)
	}
}
