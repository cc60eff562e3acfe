package mcpbuilder

import "context"

// SitemapService lists the pages a site advertises in its sitemaps.
// The crawler uses them as extra seeds behind the start URL.
type SitemapService interface {
	// DiscoverURLs returns the page URLs found through robots.txt Sitemap
	// directives, or /sitemap.xml when robots.txt names none. Sitemap
	// indexes are followed. Only pages under the start URL's path are kept.
	DiscoverURLs(ctx context.Context, startURL string) ([]string, error)
}
