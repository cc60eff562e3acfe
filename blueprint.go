package mcpbuilder

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

// Defaults used when a generator does not supply a name or summary.
const (
	DefaultBlueprintName    = "GeneratedMCPServer"
	DefaultBlueprintSummary = "Generated MCP server"
)

// EndpointSpec describes one documented HTTP operation.
type EndpointSpec struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Blueprint is the structured description of an API from which a
// server project is scaffolded. Its JSON form is the blueprint.json format.
type Blueprint struct {
	Name          string         `json:"name"`
	Summary       string         `json:"summary"`
	Endpoints     []EndpointSpec `json:"endpoints"`
	Prerequisites []string       `json:"prerequisites"`
}

// MarshalJSON encodes nil endpoint and prerequisite lists as empty arrays.
// HTML characters are left unescaped; callers that want them escaped get
// that from json.Marshal.
func (b Blueprint) MarshalJSON() ([]byte, error) {
	type blueprint Blueprint
	out := blueprint(b)
	if out.Endpoints == nil {
		out.Endpoints = []EndpointSpec{}
	}
	if out.Prerequisites == nil {
		out.Prerequisites = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// BlueprintGenerator produces a Blueprint from a prompt.
// Implementations report every failure as a *GenerationError.
type BlueprintGenerator interface {
	GenerateBlueprint(ctx context.Context, prompt string) (*Blueprint, error)
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a value into a lowercase, underscore-separated identifier.
// Example: "GET /users/{id}" → "get_users_id". An empty result becomes "endpoint".
func Slugify(value string) string {
	slug := slugSeparators.ReplaceAllString(strings.ToLower(value), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "endpoint"
	}
	return slug
}

// TokenCounter estimates the size of a prompt in model tokens.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// ProjectRenderer turns a finished Blueprint into a project on disk.
type ProjectRenderer interface {
	// RenderProject writes the project for bp into outputDir, including a
	// blueprint.json snapshot, and returns the directory written.
	RenderProject(ctx context.Context, bp *Blueprint, outputDir string) (string, error)
}
