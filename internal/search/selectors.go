package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// selectorSet is one candidate mapping from a results page's markup to the
// pieces of a result. Search engines ship unstable, unversioned class names,
// so no single set is trusted: candidates are tried in order and the first
// one that yields non-empty matches wins.
type selectorSet struct {
	container string
	title     string
	link      string
	snippet   []string
}

var googleSelectors = []selectorSet{
	{container: "div.g", title: "h3", link: "a[href]", snippet: []string{"div.VwiC3b", "div.yXK7lf"}},
	{container: "div.tF2Cxc", title: "h3", link: "a[href]", snippet: []string{"div.VwiC3b", "div.yXK7lf"}},
	{container: "div.MjjYud", title: "h3", link: "a[href]", snippet: []string{"div.VwiC3b"}},
}

var duckduckgoSelectors = []selectorSet{
	{container: "div.result__body", title: "a.result__a", link: "a.result__a", snippet: []string{"a.result__snippet"}},
	{container: "div.result", title: "a.result__a", link: "a.result__a", snippet: []string{"a.result__snippet", "div.result__snippet"}},
}

// blockMarkers identify bot-challenge pages. Hitting one is a hard failure
// for the strategy, not something to retry.
var blockMarkers = []string{"unusual traffic", "captcha", "/sorry/index"}

func looksBlocked(html string) bool {
	lower := strings.ToLower(html)
	for _, marker := range blockMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// extractResults applies the selector cascade to a parsed document. Each set
// is a pure html -> results mapping; the first set that produces anything
// wins.
func extractResults(doc *goquery.Document, sets []selectorSet) []Result {
	for _, set := range sets {
		if results := extractWithSet(doc, set); len(results) > 0 {
			return results
		}
	}
	return nil
}

func extractWithSet(doc *goquery.Document, set selectorSet) []Result {
	var results []Result
	doc.Find(set.container).Each(func(_ int, container *goquery.Selection) {
		href, ok := container.Find(set.link).First().Attr("href")
		if !ok || !strings.HasPrefix(href, "http") {
			return
		}

		title := strings.TrimSpace(container.Find(set.title).First().Text())
		if title == "" {
			title = PlaceholderTitle
		}

		var description string
		for _, sel := range set.snippet {
			if text := strings.TrimSpace(container.Find(sel).First().Text()); text != "" {
				description = text
				break
			}
		}
		if description == "" {
			// Last resort: any text the container carries.
			description = strings.TrimSpace(container.Text())
		}

		results = append(results, Result{
			Title:       title,
			URL:         href,
			Description: description,
		})
	})
	return results
}
