package search

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const googleFixture = `
<html><body>
<div id="search">
  <div class="g">
    <a href="https://go.dev/doc"><h3>Go Documentation</h3></a>
    <div class="VwiC3b">Official documentation for the Go programming language.</div>
  </div>
  <div class="g">
    <a href="https://go.dev/blog"><h3>The Go Blog</h3></a>
    <div class="VwiC3b">News and articles from the Go team.</div>
  </div>
  <div class="g">
    <a href="/relative/link"><h3>Skipped</h3></a>
    <div class="VwiC3b">Relative links are not results.</div>
  </div>
</div>
</body></html>`

const googleAltFixture = `
<html><body>
<div class="tF2Cxc">
  <a href="https://example.com/alt"><h3>Alternate Layout</h3></a>
  <div class="yXK7lf">Rendered with the second-generation container class.</div>
</div>
</body></html>`

const duckduckgoFixture = `
<html><body>
<div class="result">
  <div class="result__body">
    <a class="result__a" href="https://example.com/one">First Result</a>
    <a class="result__snippet" href="https://example.com/one">A snippet for the first result.</a>
  </div>
</div>
<div class="result">
  <div class="result__body">
    <a class="result__a" href="https://example.com/two">Second Result</a>
    <a class="result__snippet" href="https://example.com/two">A snippet for the second result.</a>
  </div>
</div>
</body></html>`

func parseFixture(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractResultsGoogle(t *testing.T) {
	results := extractResults(parseFixture(t, googleFixture), googleSelectors)

	require.Len(t, results, 2)
	assert.Equal(t, "Go Documentation", results[0].Title)
	assert.Equal(t, "https://go.dev/doc", results[0].URL)
	assert.Equal(t, "Official documentation for the Go programming language.", results[0].Description)
	assert.Equal(t, "The Go Blog", results[1].Title)
}

func TestExtractResultsFallsToNextSelectorSet(t *testing.T) {
	results := extractResults(parseFixture(t, googleAltFixture), googleSelectors)

	require.Len(t, results, 1)
	assert.Equal(t, "Alternate Layout", results[0].Title)
	assert.Equal(t, "Rendered with the second-generation container class.", results[0].Description)
}

func TestExtractResultsDuckDuckGo(t *testing.T) {
	results := extractResults(parseFixture(t, duckduckgoFixture), duckduckgoSelectors)

	require.Len(t, results, 2)
	assert.Equal(t, "First Result", results[0].Title)
	assert.Equal(t, "https://example.com/one", results[0].URL)
	assert.Equal(t, "A snippet for the second result.", results[1].Description)
}

func TestExtractResultsEmptyDocument(t *testing.T) {
	results := extractResults(parseFixture(t, "<html><body></body></html>"), googleSelectors)
	assert.Empty(t, results)
}

func TestExtractResultsMissingTitleGetsPlaceholder(t *testing.T) {
	fixture := `<div class="g"><a href="https://example.com">x</a><div class="VwiC3b">snippet</div></div>`
	results := extractResults(parseFixture(t, fixture), googleSelectors)

	require.Len(t, results, 1)
	assert.Equal(t, PlaceholderTitle, results[0].Title)
}

func TestLooksBlocked(t *testing.T) {
	assert.True(t, looksBlocked("Our systems have detected unusual traffic from your network"))
	assert.True(t, looksBlocked("<form action='/Sorry/index'>"))
	assert.True(t, looksBlocked("please solve this CAPTCHA to continue"))
	assert.False(t, looksBlocked("<html><body>ten blue links</body></html>"))
}
