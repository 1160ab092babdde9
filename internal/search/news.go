package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"

	"github.com/amityadav/scout/internal/httputil"
)

// NewsStrategy scrapes Bing's news results page, which renders without
// JavaScript. On top of the usual fields it extracts a publication timestamp
// and the publisher's registrable domain; a record missing either gets an
// empty string rather than being failed outright.
type NewsStrategy struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewNewsStrategy creates the news scraping strategy.
func NewNewsStrategy(log zerolog.Logger) *NewsStrategy {
	return &NewsStrategy{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: "https://www.bing.com",
		log:     log.With().Str("component", "news").Logger(),
	}
}

func (s *NewsStrategy) Name() string { return "bing_news" }

func (s *NewsStrategy) Search(ctx context.Context, query string, max int) ([]Result, error) {
	var results []Result

	for page := 0; page < maxPageRequests && len(results) < max; page++ {
		if page > 0 {
			if err := sleepCtx(ctx, pageDelay); err != nil {
				return results, nil
			}
		}

		pageURL := fmt.Sprintf(`%s/news/search?q=%s&qft=interval%%3d"7"&qft=sortbydate&count=%d&first=%d`,
			s.baseURL, url.QueryEscape(query), min(30, max-len(results)), page*30+1)

		pageResults, err := s.fetchPage(ctx, pageURL)
		if err != nil {
			if len(results) > 0 {
				break
			}
			return nil, err
		}
		if len(pageResults) == 0 {
			break // no more news cards, exhausted
		}

		results = append(results, pageResults...)
	}

	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

func (s *NewsStrategy) fetchPage(ctx context.Context, pageURL string) ([]Result, error) {
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

	return s.parseNewsCards(doc), nil
}

func (s *NewsStrategy) parseNewsCards(doc *goquery.Document) []Result {
	var results []Result
	doc.Find("div.news-card").Each(func(_ int, card *goquery.Selection) {
		titleElem := card.Find("a.title").First()
		href, ok := titleElem.Attr("href")
		if !ok {
			return
		}

		title := strings.TrimSpace(titleElem.Text())
		if title == "" {
			title = PlaceholderTitle
		}

		absolute := resolveURL(s.baseURL, href)
		timestamp, _ := card.Find("span[aria-label]").First().Attr("aria-label")

		results = append(results, Result{
			Title:       title,
			URL:         absolute,
			Description: strings.TrimSpace(card.Find("div.snippet").First().Text()),
			Source:      RegistrableDomain(absolute),
			Timestamp:   timestamp,
		})
	})
	return results
}

// RegistrableDomain reduces a URL to its registrable domain (example.co.uk,
// not news.example.co.uk). Returns "" when the URL has no usable host.
func RegistrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(u.Hostname())
	if err != nil {
		return ""
	}
	return domain
}

func resolveURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
