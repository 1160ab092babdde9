package search

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Normalizer filters malformed entries and removes URL duplicates,
// independent of which strategy produced them. Partial evidence is expected
// from scraping, so failing records are dropped silently.
type Normalizer struct {
	skipDomains []string
	log         zerolog.Logger
}

// NewNormalizer creates a normalizer. Results whose URL contains any of the
// skip-domain substrings are removed.
func NewNormalizer(log zerolog.Logger, skipDomains []string) *Normalizer {
	return &Normalizer{
		skipDomains: skipDomains,
		log:         log.With().Str("component", "normalizer").Logger(),
	}
}

// Normalize filters, deduplicates, and caps the raw results. Filtering keeps
// only records with a non-empty description, a real title, and an https URL
// with a host. Deduplication is stable and keyed by the raw URL string;
// near-duplicates differing in trailing slash or query order are kept as-is.
// The cap is applied last so upstream overfetching can absorb the shrinkage.
func (n *Normalizer) Normalize(raw []Result, max int) []Result {
	seen := make(map[string]struct{}, len(raw))
	out := make([]Result, 0, len(raw))

	for _, r := range raw {
		if !n.keep(r) {
			continue
		}
		if _, dup := seen[r.URL]; dup {
			continue
		}
		seen[r.URL] = struct{}{}
		out = append(out, r)
	}

	n.log.Debug().Int("raw", len(raw)).Int("kept", len(out)).Msg("normalized results")

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

func (n *Normalizer) keep(r Result) bool {
	if r.Description == "" || r.Title == PlaceholderTitle {
		return false
	}
	u, err := url.Parse(r.URL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return false
	}
	for _, domain := range n.skipDomains {
		if strings.Contains(r.URL, domain) {
			return false
		}
	}
	return true
}
