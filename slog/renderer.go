package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mcpbuilder"
)

// Ensure LoggingRenderer implements mcpbuilder.ProjectRenderer.
var _ mcpbuilder.ProjectRenderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a ProjectRenderer with logging.
type LoggingRenderer struct {
	next   mcpbuilder.ProjectRenderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next mcpbuilder.ProjectRenderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// RenderProject delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) RenderProject(ctx context.Context, bp *mcpbuilder.Blueprint, outputDir string) (path string, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("render project",
			"dir", outputDir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RenderProject(ctx, bp, outputDir)
}
