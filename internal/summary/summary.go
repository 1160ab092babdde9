package summary

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/amityadav/scout/internal/ai"
	"github.com/amityadav/scout/internal/search"
	"github.com/amityadav/scout/prompts"
)

// maxPromptContent bounds how much page text goes into the prompt.
const maxPromptContent = 6000

const headlinePrefix = "HEADLINE:"

// gradeDescriptors maps a comprehension grade to the audience description
// interpolated into the prompt.
var gradeDescriptors = map[int]string{
	1:  "a 6-year-old in 1st grade",
	2:  "a 7-year-old in 2nd grade",
	3:  "an 8-year-old in 3rd grade",
	4:  "a 9-year-old in 4th grade",
	5:  "a 10-year-old in 5th grade",
	6:  "an 11-year-old in 6th grade",
	7:  "a 12-year-old in 7th grade",
	8:  "a 13-year-old in 8th grade",
	9:  "a 14-year-old in 9th grade",
	10: "a 15-year-old in 10th grade",
	11: "a 16-year-old in 11th grade",
	12: "a 17-year-old in 12th grade",
	13: "a college undergraduate",
	14: "a master's degree student",
	15: "a PhD candidate",
}

const defaultAudience = "an average adult"

// GradeDescriptor returns the audience description for a comprehension grade.
// Out-of-range grades fall back to the average-adult audience.
func GradeDescriptor(grade int) string {
	if desc, ok := gradeDescriptors[grade]; ok {
		return desc
	}
	return defaultAudience
}

// Params shape a single summarization call.
type Params struct {
	Grade      int  // comprehension grade, 1-15
	WordTarget int  // approximate body length in words
	Humanize   bool // conversational register, web summaries only
	News       bool // news register, wins over Humanize
}

// BuildPrompt assembles the summarization prompt: source attribution first,
// then the audience, then the raw content. Content beyond the prompt cap is
// truncated, never rejected.
func BuildPrompt(sourceURL, content string, p Params) string {
	content = truncate(content, maxPromptContent)

	template := prompts.SummaryWeb
	switch {
	case p.News:
		template = prompts.SummaryNews
	case p.Humanize:
		template = prompts.SummaryHumanized
	}

	return fmt.Sprintf(template, sourceURL, GradeDescriptor(p.Grade), p.WordTarget, content)
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

// Parse splits a model response into headline and body. The contract asks for
// a "HEADLINE: ..." first line; when the model ignores it the first sentence
// becomes the headline and the remaining sentences the body. Generic headlines
// are replaced with one naming the source host.
func Parse(output, sourceURL string) (title, description string) {
	output = strings.TrimSpace(output)

	first, rest, _ := strings.Cut(output, "\n")
	if strings.HasPrefix(first, headlinePrefix) {
		title = strings.TrimSpace(strings.TrimPrefix(first, headlinePrefix))
		description = strings.TrimSpace(rest)
	} else {
		title, description, _ = strings.Cut(output, ". ")
		title = strings.TrimSpace(title)
		description = strings.TrimSpace(description)
	}

	if isGenericTitle(title) {
		title = "Summary of " + hostOf(sourceURL)
	}
	return title, description
}

func isGenericTitle(title string) bool {
	switch title {
	case "", "Summary of Web Content", "Summary of News Content":
		return true
	}
	return false
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// Summarizer turns fetched page text into a single summarized result.
type Summarizer struct {
	provider ai.Provider
	log      zerolog.Logger
}

// New creates a summarizer backed by the given provider.
func New(provider ai.Provider, log zerolog.Logger) *Summarizer {
	return &Summarizer{
		provider: provider,
		log:      log.With().Str("component", "summary").Logger(),
	}
}

// Summarize produces a summary result for content fetched from sourceURL.
func (s *Summarizer) Summarize(ctx context.Context, sourceURL, content string, p Params, opts ai.Options) (search.Result, error) {
	prompt := BuildPrompt(sourceURL, content, p)

	output, err := s.provider.Generate(ctx, prompt, opts)
	if err != nil {
		return search.Result{}, fmt.Errorf("summarization failed: %w", err)
	}

	title, description := Parse(output, sourceURL)
	s.log.Debug().Str("url", sourceURL).Str("title", title).Msg("summarized content")

	return search.Result{
		Title:       title,
		URL:         sourceURL,
		Description: description,
	}, nil
}
