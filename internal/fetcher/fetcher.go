package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/amityadav/scout/internal/httputil"
)

const maxContentLen = 50000

// Fetcher retrieves the readable text of an arbitrary URL. It issues exactly
// one GET and never retries; a failed fetch is reported as an error and the
// caller decides what to tell the user.
type Fetcher struct {
	client *http.Client
	log    zerolog.Logger
}

// New creates a content fetcher with a bounded request timeout.
func New(log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log.With().Str("component", "fetcher").Logger(),
	}
}

// FetchText fetches the URL and extracts its text content with markup,
// script, and style stripped.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httputil.ApplyBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	f.log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("fetched content")
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status code error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find("script, style").Remove()

	text := CollapseText(doc.Text())
	if len(text) > maxContentLen {
		f.log.Debug().Int("from", len(text)).Int("to", maxContentLen).Msg("truncating content")
		text = truncate(text, maxContentLen)
	}
	return text, nil
}

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// CollapseText cleans extracted page text: each line is trimmed, long
// multi-headline lines are split on double-space runs, and blank lines are
// dropped.
func CollapseText(raw string) string {
	var chunks []string
	for _, line := range strings.Split(raw, "\n") {
		for _, phrase := range strings.Split(strings.TrimSpace(line), "  ") {
			if phrase = strings.TrimSpace(phrase); phrase != "" {
				chunks = append(chunks, phrase)
			}
		}
	}
	return strings.Join(chunks, "\n")
}
