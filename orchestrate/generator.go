package orchestrate

import (
	"context"
	"log/slog"

	"github.com/fwojciec/mcpbuilder"
)

// Generator runs the whole pipeline: crawl, build a blueprint, render.
type Generator struct {
	Crawler      mcpbuilder.Crawler
	Orchestrator *Orchestrator
	Renderer     mcpbuilder.ProjectRenderer
	Archive      mcpbuilder.CorpusArchive // optional; failures are logged, not returned
	Logger       *slog.Logger
}

// Generate crawls startURL, builds a blueprint from the collected documents
// and renders the project into outputDir. It returns the directory written.
func (g *Generator) Generate(ctx context.Context, startURL, outputDir string) (string, error) {
	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Info("starting project generation", "url", startURL)
	corpus, err := g.Crawler.Crawl(ctx, startURL)
	if err != nil {
		return "", err
	}
	logger.Info("collected documents", "count", corpus.Len())

	if g.Archive != nil {
		if err := g.Archive.WriteCorpus(ctx, corpus); err != nil {
			logger.Warn("save documents", "err", err)
		}
	}

	bp := g.Orchestrator.BuildBlueprint(ctx, corpus.Texts(), corpus.Title())
	logger.Info("generated blueprint", "name", bp.Name, "endpoints", len(bp.Endpoints))

	path, err := g.Renderer.RenderProject(ctx, bp, outputDir)
	if err != nil {
		return "", err
	}
	logger.Info("project written", "path", path)
	return path, nil
}
