package mcpbuilder

import "strings"

// ContentType identifies the kind of content a Document holds.
type ContentType string

// Supported content types. Any other response type is never stored.
const (
	ContentTypeHTML ContentType = "html"
	ContentTypeJSON ContentType = "json"
)

// Metadata keys set on every crawled Document.
const (
	MetadataSource = "source"
	MetadataHash   = "hash"
)

// Document represents a crawled documentation resource.
// Documents are not modified after the crawler creates them.
type Document struct {
	URL         string            `json:"url"`
	Content     string            `json:"content"`
	ContentType ContentType       `json:"contentType"`
	Metadata    map[string]string `json:"metadata"`
	Title       string            `json:"title,omitempty"`
}

// Corpus is the ordered collection of documents produced by one crawl.
// Documents appear in the order their processing completed.
type Corpus struct {
	Documents []*Document `json:"documents"`
}

// Len returns the number of documents in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Documents)
}

// Concatenate joins all document contents with the separator.
func (c *Corpus) Concatenate(sep string) string {
	if c.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, len(c.Documents))
	for _, doc := range c.Documents {
		parts = append(parts, doc.Content)
	}
	return strings.Join(parts, sep)
}

// Texts returns one prompt section per document, each prefixed with its source URL.
func (c *Corpus) Texts() []string {
	if c.Len() == 0 {
		return nil
	}
	texts := make([]string, 0, len(c.Documents))
	for _, doc := range c.Documents {
		texts = append(texts, "Source: "+doc.URL+"\n\n"+doc.Content)
	}
	return texts
}

// Title returns the title of the first document, or "" if there is none.
func (c *Corpus) Title() string {
	if c.Len() == 0 {
		return ""
	}
	return c.Documents[0].Title
}
