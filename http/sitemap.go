package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/mcpbuilder"
	"github.com/temoto/robotstxt"
)

// maxSitemaps bounds how many sitemap documents one discovery may fetch,
// so a looping or huge sitemap index cannot stall the crawl.
const maxSitemaps = 50

// Ensure SitemapService implements mcpbuilder.SitemapService.
var _ mcpbuilder.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from robots.txt and sitemap XML.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// NewSitemapService creates a SitemapService. It shares the fetcher's
// timeout and user agent options; WithClient supplies the HTTP client.
func NewSitemapService(opts ...Option) *SitemapService {
	f := NewFetcher(opts...)
	return &SitemapService{client: f.client, userAgent: f.userAgent}
}

// DiscoverURLs returns the sitemap pages under startURL's path, in sitemap
// order with duplicates removed. A site without sitemaps yields an empty
// slice and no error.
func (s *SitemapService) DiscoverURLs(ctx context.Context, startURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start, err := url.Parse(startURL)
	if err != nil || start.Host == "" {
		return nil, mcpbuilder.Errorf(mcpbuilder.EINVALID, "invalid start URL %q", startURL)
	}
	root := &url.URL{Scheme: start.Scheme, Host: start.Host}

	sitemaps, err := s.locateSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{svc: s, visited: make(map[string]bool)}
	for _, sm := range sitemaps {
		if err := w.walk(ctx, sm); err != nil {
			return nil, err
		}
	}

	prefix := pathPrefix(start.Path)
	seen := make(map[string]bool, len(w.pages))
	urls := []string{}
	for _, u := range w.pages {
		if seen[u] || !underPrefix(u, prefix) {
			continue
		}
		seen[u] = true
		urls = append(urls, u)
	}
	return urls, nil
}

// locateSitemaps reads Sitemap: directives from robots.txt and falls back
// to /sitemap.xml when there are none.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if body, err := s.get(ctx, robots); err == nil {
		found, err := sitemapDirectives(body)
		body.Close()
		if err == nil && len(found) > 0 {
			return found, nil
		}
	} else if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return []string{root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}, nil
}

// sitemapDirectives returns the Sitemap: entries of a robots.txt body.
func sitemapDirectives(r io.Reader) ([]string, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxRobotsBytes))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data.Sitemaps, nil
}

type sitemapWalk struct {
	svc     *SitemapService
	visited map[string]bool
	pages   []string
}

// walk fetches one sitemap and records its pages, following nested
// sitemaps of an index. Unreachable or malformed sitemaps are skipped.
func (w *sitemapWalk) walk(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] || len(w.visited) >= maxSitemaps {
		return nil
	}
	w.visited[sitemapURL] = true

	body, err := w.svc.get(ctx, sitemapURL)
	if err != nil {
		return ctx.Err()
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil || doc.Root() == nil {
		return nil
	}

	root := doc.Root()
	switch root.Tag {
	case "sitemapindex":
		for _, loc := range locs(root, "sitemap") {
			if err := w.walk(ctx, loc); err != nil {
				return err
			}
		}
	case "urlset":
		w.pages = append(w.pages, locs(root, "url")...)
	}
	return nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(parent *etree.Element, tag string) []string {
	var out []string
	for _, el := range parent.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// pathPrefix turns a start path into a directory prefix: "/docs" and
// "/docs/" both become "/docs/", the root becomes "".
func pathPrefix(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func underPrefix(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasPrefix(u.Path, prefix) || u.Path+"/" == prefix
}
