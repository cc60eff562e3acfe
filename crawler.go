package mcpbuilder

import "context"

// Crawler collects the documentation reachable from a start URL.
type Crawler interface {
	Crawl(ctx context.Context, startURL string) (*Corpus, error)
}

// CorpusArchive persists a crawled corpus for later inspection.
type CorpusArchive interface {
	WriteCorpus(ctx context.Context, corpus *Corpus) error
}
