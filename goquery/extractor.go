// Package goquery implements mcpbuilder.HTMLExtractor on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mcpbuilder"
	"golang.org/x/net/html"
)

// Ensure Extractor implements mcpbuilder.HTMLExtractor at compile time.
var _ mcpbuilder.HTMLExtractor = (*Extractor)(nil)

// invisibleSelector matches elements whose text is never shown to a reader.
const invisibleSelector = "script, style, noscript"

// Extractor extracts the title, visible text and links of an HTML page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML and returns its title, visible text and absolute links.
func (e *Extractor) Extract(rawHTML string, baseURL string) (*mcpbuilder.ExtractResult, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, mcpbuilder.Errorf(mcpbuilder.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, mcpbuilder.Errorf(mcpbuilder.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &mcpbuilder.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	doc.Find(invisibleSelector).Remove()
	result.Text = visibleText(doc.Selection)
	result.Links = extractLinks(doc, base)

	return result, nil
}

// visibleText joins every remaining text node with single spaces.
// Entities are decoded once more after parsing so that double-encoded
// sequences such as "&amp;lt;" come out as "<".
func visibleText(sel *goquery.Selection) string {
	var words []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			words = append(words, strings.Fields(html.UnescapeString(n.Data))...)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(words, " ")
}

// extractLinks resolves every anchor href against base, keeping the first
// occurrence of each http(s) URL in document order.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links
}

// resolveURL resolves href against base and returns the absolute URL.
// Returns empty string if the href cannot be parsed or the result is not http(s).
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
