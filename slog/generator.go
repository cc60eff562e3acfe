package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mcpbuilder"
)

// Ensure LoggingGenerator implements mcpbuilder.BlueprintGenerator.
var _ mcpbuilder.BlueprintGenerator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a BlueprintGenerator with logging.
type LoggingGenerator struct {
	next   mcpbuilder.BlueprintGenerator
	name   string
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator. name identifies the
// wrapped strategy in log output.
func NewLoggingGenerator(next mcpbuilder.BlueprintGenerator, name string, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, name: name, logger: logger}
}

// GenerateBlueprint delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) GenerateBlueprint(ctx context.Context, prompt string) (bp *mcpbuilder.Blueprint, err error) {
	defer func(begin time.Time) {
		endpoints := 0
		if bp != nil {
			endpoints = len(bp.Endpoints)
		}
		g.logger.Info("generate blueprint",
			"generator", g.name,
			"prompt_bytes", len(prompt),
			"endpoints", endpoints,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.GenerateBlueprint(ctx, prompt)
}
