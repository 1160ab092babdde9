package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/amityadav/scout/internal/httputil"
)

const (
	// pageDelay is a deliberate backpressure pause between successive page
	// requests so the engine is not tripped into rate limiting.
	pageDelay = 1 * time.Second

	// maxPageRequests bounds how many result pages a strategy will walk.
	maxPageRequests = 3

	requestTimeout = 12 * time.Second
)

// GoogleStrategy scrapes Google's HTML results page over plain HTTP, without
// JavaScript execution. It shares the selector cascade with the browser
// strategy.
type GoogleStrategy struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewGoogleStrategy creates the HTTP-only Google scraping strategy.
func NewGoogleStrategy(log zerolog.Logger) *GoogleStrategy {
	return &GoogleStrategy{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: "https://www.google.com",
		log:     log.With().Str("component", "google").Logger(),
	}
}

func (s *GoogleStrategy) Name() string { return "google" }

// Search pages through results until max are collected, the page budget is
// spent, or a page comes back empty.
func (s *GoogleStrategy) Search(ctx context.Context, query string, max int) ([]Result, error) {
	var results []Result

	for page := 0; page < maxPageRequests && len(results) < max; page++ {
		if page > 0 {
			if err := sleepCtx(ctx, pageDelay); err != nil {
				return results, nil
			}
		}

		pageURL := fmt.Sprintf("%s/search?q=%s&num=%d&start=%d",
			s.baseURL, url.QueryEscape(query), max, page*10)

		pageResults, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			if len(results) > 0 {
				break
			}
			return nil, err
		}
		if len(pageResults) == 0 {
			break // exhausted
		}

		s.log.Debug().Int("page", page).Int("results", len(pageResults)).Msg("parsed results page")
		results = append(results, pageResults...)
	}

	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

func (s *GoogleStrategy) fetchPage(ctx context.Context, pageURL string) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httputil.ApplyBrowserHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	if html, _ := doc.Html(); looksBlocked(html) {
		return nil, fmt.Errorf("results page served a bot challenge")
	}

	return extractResults(doc, googleSelectors), nil
}

// sleepCtx blocks for d on the calling goroutine only; it returns early with
// the context error when the caller abandons the request.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
