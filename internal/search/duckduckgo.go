package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/amityadav/scout/internal/httputil"
)

// DuckDuckGoHTMLStrategy scrapes the JavaScript-free DuckDuckGo results page.
// It is the backup scraping target when Google serves a challenge page.
type DuckDuckGoHTMLStrategy struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewDuckDuckGoHTMLStrategy creates the DuckDuckGo HTML scraping strategy.
func NewDuckDuckGoHTMLStrategy(log zerolog.Logger) *DuckDuckGoHTMLStrategy {
	return &DuckDuckGoHTMLStrategy{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: "https://html.duckduckgo.com",
		log:     log.With().Str("component", "ddg_html").Logger(),
	}
}

func (s *DuckDuckGoHTMLStrategy) Name() string { return "duckduckgo_html" }

func (s *DuckDuckGoHTMLStrategy) Search(ctx context.Context, query string, max int) ([]Result, error) {
	searchURL := fmt.Sprintf("%s/html/?q=%s", s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
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

	results := extractResults(doc, duckduckgoSelectors)
	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

// InstantAnswerStrategy queries DuckDuckGo's keyless instant-answer JSON
// endpoint. Coverage is best-effort: the endpoint answers encyclopedic
// queries well and returns nothing for most others.
type InstantAnswerStrategy struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewInstantAnswerStrategy creates the instant-answer JSON strategy.
func NewInstantAnswerStrategy(log zerolog.Logger) *InstantAnswerStrategy {
	return &InstantAnswerStrategy{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: "https://api.duckduckgo.com",
		log:     log.With().Str("component", "instant_answer").Logger(),
	}
}

func (s *InstantAnswerStrategy) Name() string { return "instant_answer" }

type instantTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []instantTopic `json:"Topics"`
}

type instantResponse struct {
	Heading       string         `json:"Heading"`
	AbstractText  string         `json:"AbstractText"`
	AbstractURL   string         `json:"AbstractURL"`
	RelatedTopics []instantTopic `json:"RelatedTopics"`
}

func (s *InstantAnswerStrategy) Search(ctx context.Context, query string, max int) ([]Result, error) {
	apiURL := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
		s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d", resp.StatusCode)
	}

	var decoded instantResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var results []Result
	if decoded.AbstractText != "" && decoded.AbstractURL != "" {
		title := decoded.Heading
		if title == "" {
			title = PlaceholderTitle
		}
		results = append(results, Result{
			Title:       title,
			URL:         decoded.AbstractURL,
			Description: decoded.AbstractText,
		})
	}

	var walk func(topic instantTopic)
	walk = func(topic instantTopic) {
		if len(results) >= max {
			return
		}
		if topic.Text != "" && topic.FirstURL != "" {
			title, description := splitTopicText(topic.Text)
			results = append(results, Result{
				Title:       title,
				URL:         topic.FirstURL,
				Description: description,
			})
		}
		for _, child := range topic.Topics {
			walk(child)
		}
	}
	for _, topic := range decoded.RelatedTopics {
		walk(topic)
	}

	if len(results) > max {
		results = results[:max]
	}
	return results, nil
}

// splitTopicText separates an instant-answer topic line into title and
// snippet. The endpoint packs both into one "Title - snippet" string.
func splitTopicText(text string) (string, string) {
	parts := strings.SplitN(text, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(text), strings.TrimSpace(text)
}
