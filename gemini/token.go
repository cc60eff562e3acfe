package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/mcpbuilder"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ mcpbuilder.TokenCounter = (*TokenCounter)(nil)

// TokenCounter estimates prompt size offline with the Gemini local tokenizer,
// so the orchestrator can log how large a prompt is before sending it.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model, or DefaultModel if empty.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// CountTokens counts the tokens text occupies as a single user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens for %s: %w", tc.model, err)
	}
	return int(result.TotalTokens), nil
}
