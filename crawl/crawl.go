// Package crawl provides bounded breadth-first crawling of documentation
// sites. It coordinates fetching, scope checks, content dispatch and link
// discovery, and collects the crawled pages into a Corpus.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/mcpbuilder"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxPages is the page cap used when Crawler.MaxPages is not set.
const DefaultMaxPages = 20

// Frontier sizing for the Bloom prefilter.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Ensure Crawler implements mcpbuilder.Crawler at compile time.
var _ mcpbuilder.Crawler = (*Crawler)(nil)

// Crawler performs a scope-limited breadth-first crawl from a start URL.
//
// Every URL taken off the queue counts toward MaxPages, including URLs that
// are then rejected by the scope check or fail to fetch. Per-page failures
// are logged and skipped; they never abort the crawl.
type Crawler struct {
	Fetcher   mcpbuilder.Fetcher
	Extractor mcpbuilder.HTMLExtractor
	Logger    *slog.Logger

	MaxPages int           // defaults to DefaultMaxPages
	Timeout  time.Duration // per-request deadline, none if zero
	Allow    []string      // full-match URL patterns, default: everything
	Deny     []string      // full-match URL patterns, deny wins over allow

	// Concurrency is the number of fetches in flight. With the default of 1
	// the corpus is in exact breadth-first order; above 1 the order is the
	// completion order.
	Concurrency int

	RateLimiter mcpbuilder.DomainLimiter // optional
	RetryDelays []time.Duration          // optional; nil means a single attempt

	// Sitemaps, if set, seeds the queue with the site's in-scope sitemap
	// pages right behind the start URL. They count toward MaxPages like
	// any other URL.
	Sitemaps mcpbuilder.SitemapService

	// Robots, if set, is consulted before every fetch. Disallowed URLs
	// are skipped but still count toward MaxPages.
	Robots mcpbuilder.RobotsPolicy
}

// pageResult holds the outcome of fetching and parsing a single URL.
type pageResult struct {
	url       string
	resp      *mcpbuilder.Response
	extracted *mcpbuilder.ExtractResult
	blocked   bool
	err       error
}

// Crawl crawls from startURL and returns the documents collected.
// It only fails when the start URL or the allow/deny patterns are invalid.
// If ctx is canceled the documents collected so far are returned.
func (c *Crawler) Crawl(ctx context.Context, startURL string) (*mcpbuilder.Corpus, error) {
	scope, err := mcpbuilder.NewScope(startURL, c.Allow, c.Deny)
	if err != nil {
		return nil, err
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	logger := c.logger()

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(startURL)
	c.seedFromSitemaps(ctx, startURL, frontier, scope)

	workCh := make(chan string)
	resultCh := make(chan pageResult)

	// Start worker pool
	var g errgroup.Group
	for i := 0; i < concurrency; i++ {
		g.Go(func() error {
			for u := range workCh {
				resultCh <- c.processURL(ctx, u)
			}
			return nil
		})
	}

	corpus := &mcpbuilder.Corpus{}
	var stats crawlStats
	pending := 0

	// Coordinator loop. It owns the frontier: workers only fetch and parse.
	// A worker is always idle when pending < concurrency, so the send on
	// workCh cannot block.
	for {
		if ctx.Err() == nil && pending < concurrency {
			if u, ok := c.next(frontier, scope, maxPages, &stats); ok {
				workCh <- u
				pending++
				continue
			}
		}
		if pending == 0 {
			break
		}
		res := <-resultCh
		pending--
		c.handleResult(&res, frontier, scope, corpus, &stats)
	}

	close(workCh)
	_ = g.Wait()

	logger.Info("crawl finished",
		"url", startURL,
		"visited", frontier.Visited(),
		"documents", corpus.Len(),
		"failed", stats.failed,
		"skipped", stats.skipped,
		"size", FormatBytes(stats.bytes),
	)

	return corpus, nil
}

func (c *Crawler) seedFromSitemaps(ctx context.Context, startURL string, frontier *Frontier, scope *mcpbuilder.Scope) {
	if c.Sitemaps == nil {
		return
	}
	urls, err := c.Sitemaps.DiscoverURLs(ctx, startURL)
	if err != nil {
		c.logger().Warn("sitemap discovery failed", "url", startURL, "err", err)
		return
	}
	seeded := 0
	for _, u := range urls {
		if u == startURL || !scope.Allows(u) {
			continue
		}
		frontier.Push(u)
		seeded++
	}
	c.logger().Info("seeded from sitemap", "url", startURL, "found", len(urls), "queued", seeded)
}

type crawlStats struct {
	failed  int
	skipped int
	bytes   int
}

// next pops URLs until it finds one to fetch. Each newly visited URL counts
// toward maxPages whether or not it passes the scope check.
func (c *Crawler) next(frontier *Frontier, scope *mcpbuilder.Scope, maxPages int, stats *crawlStats) (string, bool) {
	for frontier.Visited() < maxPages {
		u, ok := frontier.Pop()
		if !ok {
			return "", false
		}
		if !frontier.Visit(u) {
			continue
		}
		if !scope.Allows(u) {
			stats.skipped++
			c.logger().Debug("skipping disallowed url", "url", u)
			continue
		}
		return u, true
	}
	return "", false
}

// processURL fetches a URL and parses it if it is HTML. It runs on a worker.
func (c *Crawler) processURL(ctx context.Context, rawURL string) pageResult {
	result := pageResult{url: rawURL}

	if c.Robots != nil && !c.Robots.Allowed(ctx, rawURL) {
		result.blocked = true
		return result
	}

	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	fetchFn := func(ctx context.Context, u string) (*mcpbuilder.Response, error) {
		if c.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.Timeout)
			defer cancel()
		}
		return c.Fetcher.Fetch(ctx, u)
	}
	resp, err := FetchWithRetry(ctx, rawURL, fetchFn, c.RetryDelays, c.logRetry)
	if err != nil {
		result.err = err
		return result
	}
	result.resp = resp

	if resp.MediaType() == "text/html" {
		extracted, err := c.Extractor.Extract(resp.Body, rawURL)
		if err != nil {
			result.err = err
			return result
		}
		result.extracted = extracted
	}

	return result
}

// handleResult turns a completed fetch into a document and queues its links.
// It runs on the coordinator goroutine.
func (c *Crawler) handleResult(res *pageResult, frontier *Frontier, scope *mcpbuilder.Scope, corpus *mcpbuilder.Corpus, stats *crawlStats) {
	logger := c.logger()

	if res.blocked {
		stats.skipped++
		logger.Info("skipping url disallowed by robots.txt", "url", res.url)
		return
	}
	if res.err != nil {
		stats.failed++
		logger.Warn("failed to fetch", "url", res.url, "err", res.err)
		return
	}

	switch mediaType := res.resp.MediaType(); mediaType {
	case "text/html":
		for _, link := range res.extracted.Links {
			if !scope.Allows(link) || frontier.Seen(link) {
				continue
			}
			frontier.Push(link)
		}
		corpus.Documents = append(corpus.Documents,
			newDocument(res.url, res.extracted.Text, mcpbuilder.ContentTypeHTML, res.extracted.Title))
		stats.bytes += len(res.extracted.Text)
	case "application/json":
		corpus.Documents = append(corpus.Documents,
			newDocument(res.url, res.resp.Body, mcpbuilder.ContentTypeJSON, ""))
		stats.bytes += len(res.resp.Body)
	default:
		stats.skipped++
		logger.Info("skipping unsupported content type", "url", res.url, "contentType", mediaType)
	}
}

func newDocument(rawURL, content string, contentType mcpbuilder.ContentType, title string) *mcpbuilder.Document {
	return &mcpbuilder.Document{
		URL:         rawURL,
		Content:     content,
		ContentType: contentType,
		Title:       title,
		Metadata: map[string]string{
			mcpbuilder.MetadataSource: rawURL,
			mcpbuilder.MetadataHash:   ComputeHash(content),
		},
	}
}

func (c *Crawler) logRetry(rawURL string, attempt int, wait time.Duration, err error) {
	c.logger().Debug("retrying fetch", "url", rawURL, "attempt", attempt, "wait", wait, "err", err)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
