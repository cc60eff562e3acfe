package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mcpbuilder"
)

// Ensure LoggingSitemapService implements mcpbuilder.SitemapService.
var _ mcpbuilder.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   mcpbuilder.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next mcpbuilder.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, startURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("sitemap discovery",
			"url", startURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, startURL)
}
