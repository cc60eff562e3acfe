package mock

import (
	"context"

	"github.com/fwojciec/mcpbuilder"
)

var _ mcpbuilder.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of mcpbuilder.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*mcpbuilder.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*mcpbuilder.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ mcpbuilder.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of mcpbuilder.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

var _ mcpbuilder.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of mcpbuilder.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, startURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, startURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, startURL)
}

var _ mcpbuilder.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of mcpbuilder.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, rawURL string) bool
}

func (p *RobotsPolicy) Allowed(ctx context.Context, rawURL string) bool {
	return p.AllowedFn(ctx, rawURL)
}
