// Package slog provides logging decorators for mcpbuilder services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mcpbuilder"
)

// Ensure LoggingFetcher implements mcpbuilder.Fetcher.
var _ mcpbuilder.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   mcpbuilder.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mcpbuilder.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *mcpbuilder.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		var contentType string
		if resp != nil {
			status, size, contentType = resp.StatusCode, len(resp.Body), resp.MediaType()
		}
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"type", contentType,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
