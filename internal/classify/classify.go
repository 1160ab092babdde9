package classify

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind is the routing decision made once per incoming request.
type Kind int

const (
	// SearchQuery routes to the search cascade.
	SearchQuery Kind = iota
	// ContentURL routes to the content fetcher and summary builder.
	ContentURL
	// ImageURL routes to the vision-capable generation provider.
	ImageURL
)

func (k Kind) String() string {
	switch k {
	case ContentURL:
		return "content_url"
	case ImageURL:
		return "image_url"
	default:
		return "search_query"
	}
}

// DefaultImageInstruction is substituted when an image URL arrives with no
// accompanying text.
const DefaultImageInstruction = "Describe this image in one sentence."

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}

var urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// Classify decides how a free-text request should be routed. A string counts
// as a URL only when it parses with both a scheme and a host.
func Classify(text string) Kind {
	text = strings.TrimSpace(text)
	// URLs never contain whitespace; url.Parse is lenient about spaces in
	// paths, so guard explicitly before parsing.
	if strings.ContainsAny(text, " \t\n") {
		// Free text may still carry an embedded image URL with an instruction.
		if embedded, _, ok := ExtractImageRequest(text); ok && embedded != "" {
			return ImageURL
		}
		return SearchQuery
	}
	u, err := url.Parse(text)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return SearchQuery
	}
	if isImageURL(u) {
		return ImageURL
	}
	return ContentURL
}

// ExtractImageRequest locates the first embedded image URL in free text and
// treats the remaining text as a custom instruction. When the remainder is
// empty the default instruction is substituted.
func ExtractImageRequest(text string) (imageURL, instruction string, ok bool) {
	match := urlPattern.FindString(text)
	if match == "" {
		return "", "", false
	}
	u, err := url.Parse(match)
	if err != nil || !isImageURL(u) {
		return "", "", false
	}
	instruction = strings.TrimSpace(strings.Replace(text, match, "", 1))
	if instruction == "" {
		instruction = DefaultImageInstruction
	}
	return match, instruction, true
}

func isImageURL(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
