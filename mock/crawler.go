package mock

import (
	"context"

	"github.com/fwojciec/mcpbuilder"
)

var _ mcpbuilder.Crawler = (*Crawler)(nil)

// Crawler is a mock implementation of mcpbuilder.Crawler.
type Crawler struct {
	CrawlFn func(ctx context.Context, startURL string) (*mcpbuilder.Corpus, error)
}

func (c *Crawler) Crawl(ctx context.Context, startURL string) (*mcpbuilder.Corpus, error) {
	return c.CrawlFn(ctx, startURL)
}

var _ mcpbuilder.CorpusArchive = (*CorpusArchive)(nil)

// CorpusArchive is a mock implementation of mcpbuilder.CorpusArchive.
type CorpusArchive struct {
	WriteCorpusFn func(ctx context.Context, corpus *mcpbuilder.Corpus) error
}

func (a *CorpusArchive) WriteCorpus(ctx context.Context, corpus *mcpbuilder.Corpus) error {
	return a.WriteCorpusFn(ctx, corpus)
}
