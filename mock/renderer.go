package mock

import (
	"context"

	"github.com/fwojciec/mcpbuilder"
)

var _ mcpbuilder.ProjectRenderer = (*ProjectRenderer)(nil)

// ProjectRenderer is a mock implementation of mcpbuilder.ProjectRenderer.
type ProjectRenderer struct {
	RenderProjectFn func(ctx context.Context, bp *mcpbuilder.Blueprint, outputDir string) (string, error)
}

func (r *ProjectRenderer) RenderProject(ctx context.Context, bp *mcpbuilder.Blueprint, outputDir string) (string, error) {
	return r.RenderProjectFn(ctx, bp, outputDir)
}
