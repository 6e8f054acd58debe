package browser

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Snapshot cleaning strips the markup that dominates raw documents without
// carrying information: script bodies, style sheets, and comments. Cleaning
// works on the raw document text so everything that survives is exactly the
// markup the page served, byte for byte; truncation happens after cleaning.
var (
	scriptBlockPattern = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlockPattern  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	commentPattern     = regexp.MustCompile(`(?s)<!--.*?-->`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// CleanSnapshot removes script blocks, style blocks, and HTML comments from
// raw document HTML, then collapses whitespace runs to single spaces.
func CleanSnapshot(rawHTML string) string {
	cleaned := scriptBlockPattern.ReplaceAllString(rawHTML, "")
	cleaned = styleBlockPattern.ReplaceAllString(cleaned, "")
	cleaned = commentPattern.ReplaceAllString(cleaned, "")
	return whitespacePattern.ReplaceAllString(cleaned, " ")
}

// PageSummary describes a page for the run summary artifact.
type PageSummary struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// SummarizePage extracts the title and meta description from raw document
// HTML. The parser is error-tolerant, so malformed markup still yields
// whatever metadata can be found.
func SummarizePage(rawHTML, url string) PageSummary {
	summary := PageSummary{URL: url}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return summary
	}

	summary.Title = extractTitle(doc)
	summary.Description = extractMetaDescription(doc)
	return summary
}

// extractTitle extracts the page title from the document
func extractTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if title != "" {
				return
			}
		}
	}
	traverse(doc)
	return title
}

// extractMetaDescription extracts the meta description from the document
func extractMetaDescription(doc *html.Node) string {
	var description string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var isDescription bool
			var content string
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val == "description" {
					isDescription = true
				}
				if attr.Key == "content" {
					content = attr.Val
				}
			}
			if isDescription && content != "" {
				description = strings.TrimSpace(content)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if description != "" {
				return
			}
		}
	}
	traverse(doc)
	return description
}
