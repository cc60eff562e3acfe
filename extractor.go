package mcpbuilder

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the text of the page's <title>, or "" if absent.
	Title string

	// Text is the visible page text with script, style and noscript
	// removed, entities decoded and whitespace collapsed.
	Text string

	// Links holds every anchor href resolved to an absolute http(s) URL,
	// in document order. Scope filtering is left to the caller.
	Links []string
}

// HTMLExtractor extracts text, title and outbound links from HTML.
type HTMLExtractor interface {
	// Extract parses html fetched from baseURL.
	// The baseURL is used to resolve relative links.
	Extract(html string, baseURL string) (*ExtractResult, error)
}
