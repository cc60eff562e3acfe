// Package heuristic detects HTTP endpoints in free text with a regular
// expression. It needs no network access and never fails, which makes it
// the fallback blueprint generator.
package heuristic

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/mcpbuilder"
)

// Summary is the summary given to heuristically generated blueprints.
const Summary = "Heuristically generated MCP server blueprint"

// endpointPattern matches an HTTP method followed by whitespace and a
// slash-prefixed path that may contain {param} placeholders.
var endpointPattern = regexp.MustCompile(`(?i)(GET|POST|PUT|PATCH|DELETE|OPTIONS|HEAD)\s+(/[\w\-/{}.:]*)`)

// ExtractEndpoints scans text left to right and returns one EndpointSpec per
// method/path occurrence, in order of appearance. Repeats are kept.
func ExtractEndpoints(text string) []mcpbuilder.EndpointSpec {
	var endpoints []mcpbuilder.EndpointSpec
	for _, m := range endpointPattern.FindAllStringSubmatch(text, -1) {
		method := strings.ToUpper(m[1])
		path := m[2]
		endpoints = append(endpoints, mcpbuilder.EndpointSpec{
			Name:        mcpbuilder.Slugify(method + " " + path),
			Method:      method,
			Path:        path,
			Description: "Auto-detected endpoint for " + method + " " + path,
		})
	}
	return endpoints
}

// Ensure Generator implements mcpbuilder.BlueprintGenerator at compile time.
var _ mcpbuilder.BlueprintGenerator = (*Generator)(nil)

// Generator builds blueprints from the endpoints found in the prompt text.
type Generator struct {
	name string
}

// NewGenerator creates a Generator naming its blueprints name, or
// mcpbuilder.DefaultBlueprintName if name is empty.
func NewGenerator(name string) *Generator {
	if name == "" {
		name = mcpbuilder.DefaultBlueprintName
	}
	return &Generator{name: name}
}

// GenerateBlueprint extracts endpoints from prompt. It never returns an error.
func (g *Generator) GenerateBlueprint(_ context.Context, prompt string) (*mcpbuilder.Blueprint, error) {
	return &mcpbuilder.Blueprint{
		Name:      g.name,
		Summary:   Summary,
		Endpoints: ExtractEndpoints(prompt),
	}, nil
}
