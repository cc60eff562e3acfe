package mcpbuilder

import (
	"context"
	"mime"
	"strings"
)

// Response is a successfully fetched resource.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string // raw Content-Type header
	Body        string
}

// MediaType returns the primary MIME type of the response, lowercased and
// with parameters stripped. A missing header is treated as text/plain.
func (r *Response) MediaType() string {
	if r.ContentType == "" {
		return "text/plain"
	}
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		mediaType, _, _ = strings.Cut(r.ContentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

// Fetcher retrieves resources over the network.
type Fetcher interface {
	// Fetch performs a GET request for the URL.
	// Transport failures and non-success status codes are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases any resources held by the fetcher.
	Close() error
}
