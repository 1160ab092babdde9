package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amityadav/scout/internal/ai"
	"github.com/amityadav/scout/internal/classify"
	"github.com/amityadav/scout/internal/config"
	"github.com/amityadav/scout/internal/fetcher"
	"github.com/amityadav/scout/internal/search"
	"github.com/amityadav/scout/internal/summary"
)

const fetchFailureMessage = "Failed to retrieve content from the URL.  Some sites prohibit summarization.  Click URL to go there directly."

// Request carries the per-request knobs. Zero values are filled in from the
// configured defaults.
type Request struct {
	Query              string
	NumResults         int
	MaxTokens          int
	SummaryLength      int
	Model              string
	Temperature        float64
	ComprehensionGrade int
	SearchType         string // "web" or "news"
	Humanize           bool
}

// Agent orchestrates the whole pipeline: classify the request, then search,
// summarize, or analyze an image. It never returns an error; every failure
// becomes a single explanatory result record.
type Agent struct {
	cfg        config.Config
	web        *search.Cascade
	news       search.Strategy
	normalizer *search.Normalizer
	fetcher    *fetcher.Fetcher
	summarizer *summary.Summarizer
	provider   ai.Provider
	log        zerolog.Logger
}

// New wires an agent from its collaborators.
func New(cfg config.Config, web *search.Cascade, news search.Strategy, normalizer *search.Normalizer, f *fetcher.Fetcher, s *summary.Summarizer, provider ai.Provider, log zerolog.Logger) *Agent {
	return &Agent{
		cfg:        cfg,
		web:        web,
		news:       news,
		normalizer: normalizer,
		fetcher:    f,
		summarizer: s,
		provider:   provider,
		log:        log.With().Str("component", "agent").Logger(),
	}
}

// ProcessRequest handles one user request end to end. The returned slice is
// never nil and never empty.
func (a *Agent) ProcessRequest(ctx context.Context, req Request) (results []search.Result) {
	req = a.applyDefaults(req)
	log := a.log.With().Str("request_id", uuid.NewString()).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("request processing panicked")
			results = errorResults(fmt.Sprintf("%v", r))
		}
	}()

	query := strings.TrimSpace(req.Query)
	kind := classify.Classify(query)
	log.Info().Str("kind", kind.String()).Str("search_type", req.SearchType).Msg("processing request")

	switch kind {
	case classify.ImageURL:
		return a.processImage(ctx, query, req, log)
	case classify.ContentURL:
		return a.processContent(ctx, query, req, log)
	default:
		return a.processSearch(ctx, query, req, log)
	}
}

func (a *Agent) applyDefaults(req Request) Request {
	if req.NumResults <= 0 {
		req.NumResults = a.cfg.NumResults
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = a.cfg.MaxTokens
	}
	if req.SummaryLength <= 0 {
		req.SummaryLength = a.cfg.SummaryLength
	}
	if req.Model == "" {
		req.Model = a.cfg.Model
	}
	if req.ComprehensionGrade <= 0 {
		req.ComprehensionGrade = a.cfg.ComprehensionGrade
	}
	if req.SearchType == "" {
		req.SearchType = a.cfg.SearchType
	}
	return req
}

func (a *Agent) processSearch(ctx context.Context, query string, req Request, log zerolog.Logger) []search.Result {
	if req.SearchType == "news" {
		raw, err := a.news.Search(ctx, query, req.NumResults)
		if err != nil {
			log.Warn().Err(err).Msg("news search failed")
			return errorResults(err.Error())
		}
		if len(raw) == 0 {
			return []search.Result{{
				Title:       "No Results",
				Description: "I'm sorry, but I couldn't find any relevant news for your request.",
			}}
		}
		if len(raw) > req.NumResults {
			raw = raw[:req.NumResults]
		}
		return raw
	}

	// Overfetch so that filtering and dedup still leave enough results.
	raw := a.web.Search(ctx, query, req.NumResults*2)
	if len(raw) == 0 {
		return []search.Result{{
			Title:       "No Results",
			Description: "I'm sorry, but I couldn't find any relevant information for your request.",
		}}
	}

	filtered := a.normalizer.Normalize(raw, req.NumResults)
	if len(filtered) == 0 {
		return []search.Result{{
			Title:       "No Results",
			Description: "I found some results, but they were all from domains I've been instructed to skip. Could you try rephrasing your request?",
		}}
	}
	return filtered
}

func (a *Agent) processContent(ctx context.Context, url string, req Request, log zerolog.Logger) []search.Result {
	content, err := a.fetcher.FetchText(ctx, url)
	if err != nil {
		log.Warn().Str("url", url).Err(err).Msg("content fetch failed")
		return []search.Result{{
			Title:       "Error",
			URL:         url,
			Description: fetchFailureMessage,
		}}
	}

	news := req.SearchType == "news"
	params := summary.Params{
		Grade:      req.ComprehensionGrade,
		WordTarget: req.SummaryLength,
		Humanize:   req.Humanize && !news,
		News:       news,
	}
	opts := ai.Options{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if news {
		opts.Temperature = 0
	}

	result, err := a.summarizer.Summarize(ctx, url, content, params, opts)
	if err != nil {
		log.Warn().Str("url", url).Err(err).Msg("summarization failed")
		return errorResults(err.Error())
	}
	return []search.Result{result}
}

func (a *Agent) processImage(ctx context.Context, query string, req Request, log zerolog.Logger) []search.Result {
	imageURL, instruction, ok := classify.ExtractImageRequest(query)
	if !ok {
		imageURL, instruction = query, classify.DefaultImageInstruction
	}

	opts := ai.Options{
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	description, err := a.provider.GenerateWithImage(ctx, instruction, imageURL, opts)
	if err != nil {
		log.Warn().Str("url", imageURL).Err(err).Msg("image analysis failed")
		return []search.Result{{
			Title:       "Error",
			URL:         imageURL,
			Description: "An error occurred while analyzing the image: " + err.Error(),
		}}
	}

	return []search.Result{{
		Title:       "Image Analysis",
		URL:         imageURL,
		Description: description,
	}}
}

func errorResults(msg string) []search.Result {
	return []search.Result{{
		Title:       "Error",
		URL:         "",
		Description: "An error occurred while processing your request: " + msg,
	}}
}
