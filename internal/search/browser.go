package search

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

const (
	browserTimeout = 30 * time.Second
	probeTimeout   = 10 * time.Second

	spoofedUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var (
	probeOnce        sync.Once
	browserAvailable bool
)

// BrowserAvailable reports whether a controllable browser can be driven. The
// calling environment (sandboxed vs. unrestricted) is not knowable in
// advance, so this is a runtime probe, not a configuration flag: the first
// call attempts to start a browser and the verdict is cached for the
// remainder of the process.
func BrowserAvailable(remoteURL string, log zerolog.Logger) bool {
	probeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		allocCtx, allocCancel := newAllocator(ctx, remoteURL)
		defer allocCancel()

		browserCtx, browserCancel := chromedp.NewContext(allocCtx)
		defer browserCancel()

		if err := chromedp.Run(browserCtx); err != nil {
			log.Info().Err(err).Msg("no controllable browser available, automation strategy disabled")
			return
		}
		browserAvailable = true
		log.Info().Msg("controllable browser detected, automation strategy enabled")
	})
	return browserAvailable
}

func newAllocator(ctx context.Context, remoteURL string) (context.Context, context.CancelFunc) {
	if remoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, remoteURL)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		// Countermeasures: no automation banner flag, no webdriver hint.
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(spoofedUserAgent),
		chromedp.WindowSize(1280, 720),
	)
	return chromedp.NewExecAllocator(ctx, opts...)
}

// BrowserStrategy drives a headless browser to the Google results page and
// extracts results from the rendered markup with the same selector cascade
// the HTTP strategy uses. Every browser handle is scoped to a single search;
// nothing survives the call.
type BrowserStrategy struct {
	remoteURL string
	log       zerolog.Logger
}

// NewBrowserStrategy creates the browser-automation strategy. Callers should
// gate registration on BrowserAvailable.
func NewBrowserStrategy(remoteURL string, log zerolog.Logger) *BrowserStrategy {
	return &BrowserStrategy{
		remoteURL: remoteURL,
		log:       log.With().Str("component", "browser").Logger(),
	}
}

func (s *BrowserStrategy) Name() string { return "browser" }

func (s *BrowserStrategy) Search(ctx context.Context, query string, max int) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, browserTimeout)
	defer cancel()

	allocCtx, allocCancel := newAllocator(ctx, s.remoteURL)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	searchURL := fmt.Sprintf("https://www.google.com/search?q=%s&num=%d",
		url.QueryEscape(query), max)

	// Randomized render wait: a fixed interval is itself a bot signature.
	wait := 2*time.Second + time.Duration(rand.Int64N(int64(2*time.Second)))

	var html string
	err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
			"Referer":         "https://www.google.com/",
		}),
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(wait),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("browser run failed: %w", err)
	}

	if looksBlocked(html) {
		return nil, fmt.Errorf("results page served a bot challenge")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	results := extractResults(doc, googleSelectors)
	if len(results) > max {
		results = results[:max]
	}
	s.log.Debug().Int("results", len(results)).Msg("extracted rendered results")
	return results, nil
}
