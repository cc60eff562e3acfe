package mock

import "github.com/fwojciec/mcpbuilder"

var _ mcpbuilder.HTMLExtractor = (*HTMLExtractor)(nil)

// HTMLExtractor is a mock implementation of mcpbuilder.HTMLExtractor.
type HTMLExtractor struct {
	ExtractFn func(html string, baseURL string) (*mcpbuilder.ExtractResult, error)
}

func (e *HTMLExtractor) Extract(html string, baseURL string) (*mcpbuilder.ExtractResult, error) {
	return e.ExtractFn(html, baseURL)
}
