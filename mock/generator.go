package mock

import (
	"context"

	"github.com/fwojciec/mcpbuilder"
)

var _ mcpbuilder.BlueprintGenerator = (*BlueprintGenerator)(nil)

// BlueprintGenerator is a mock implementation of mcpbuilder.BlueprintGenerator.
type BlueprintGenerator struct {
	GenerateBlueprintFn func(ctx context.Context, prompt string) (*mcpbuilder.Blueprint, error)
}

func (g *BlueprintGenerator) GenerateBlueprint(ctx context.Context, prompt string) (*mcpbuilder.Blueprint, error) {
	return g.GenerateBlueprintFn(ctx, prompt)
}

var _ mcpbuilder.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of mcpbuilder.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
