// Package http provides an HTTP-based implementation of mcpbuilder.Fetcher.
// It does not execute JavaScript; pages are consumed as served.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/mcpbuilder"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the crawler to documentation servers.
const DefaultUserAgent = "mcp-builder/0.1"

// Ensure Fetcher implements mcpbuilder.Fetcher at compile time.
var _ mcpbuilder.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documentation resources using HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// An empty string keeps DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithClient replaces the underlying http.Client. The configured timeout
// is applied to it.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the resource at the given URL.
// HTML bodies are decoded to UTF-8 according to the declared or sniffed
// charset; all other bodies are returned verbatim.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*mcpbuilder.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	result := &mcpbuilder.Response{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	var body io.Reader = resp.Body
	if result.MediaType() == "text/html" {
		if body, err = charset.NewReader(resp.Body, result.ContentType); err != nil {
			return nil, fmt.Errorf("decode %s: %w", url, err)
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	result.Body = string(data)

	return result, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
