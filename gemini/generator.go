package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/mcpbuilder"
	"google.golang.org/genai"
)

// Defaults for the remote model.
const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultMaxOutputTokens = 1200
)

// APIKeyEnv is the environment variable holding the Gemini API key.
const APIKeyEnv = "GEMINI_API_KEY"

// ContentGenerator is the subset of the genai client used by Generator.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Ensure Generator implements mcpbuilder.BlueprintGenerator at compile time.
var _ mcpbuilder.BlueprintGenerator = (*Generator)(nil)

// Generator implements mcpbuilder.BlueprintGenerator using Google Gemini.
type Generator struct {
	models          ContentGenerator
	model           string
	maxOutputTokens int32
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithMaxOutputTokens caps the length of the model response.
func WithMaxOutputTokens(n int32) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxOutputTokens = n
		}
	}
}

// WithClient replaces the genai client, typically with a test double.
func WithClient(models ContentGenerator) Option {
	return func(g *Generator) {
		g.models = models
	}
}

// NewGenerator creates a Generator. The API key is read once through getenv;
// a missing key is a configuration error with code EUNAUTHORIZED.
func NewGenerator(ctx context.Context, getenv func(string) string, opts ...Option) (*Generator, error) {
	apiKey := getenv(APIKeyEnv)
	if apiKey == "" {
		return nil, mcpbuilder.Errorf(mcpbuilder.EUNAUTHORIZED, "%s is not set", APIKeyEnv)
	}

	g := &Generator{
		model:           DefaultModel,
		maxOutputTokens: DefaultMaxOutputTokens,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.models == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		g.models = client.Models
	}

	return g, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}

// GenerateBlueprint sends prompt to the model and parses its JSON answer.
// Every failure is returned as a *mcpbuilder.GenerationError.
func (g *Generator) GenerateBlueprint(ctx context.Context, prompt string) (*mcpbuilder.Blueprint, error) {
	result, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(g.maxOutputTokens),
	)
	if err != nil {
		return nil, &mcpbuilder.GenerationError{Op: "request", Err: err}
	}
	if result == nil {
		return nil, &mcpbuilder.GenerationError{
			Op:  "request",
			Err: mcpbuilder.Errorf(mcpbuilder.EINTERNAL, "gemini returned nil result"),
		}
	}

	return ParseBlueprint(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(maxOutputTokens int32) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		MaxOutputTokens:  maxOutputTokens,
		ResponseMIMEType: "application/json",
		Temperature:      &temp,
	}
}

// ParseBlueprint converts a JSON model response into a Blueprint.
//
// Invalid JSON yields a *mcpbuilder.ParseError wrapped in a
// *mcpbuilder.GenerationError, as does anything after the top-level value.
// A name or summary that is missing or falsy (null, false, 0, "", [] or {})
// falls back to the package defaults. Missing endpoint fields default to method GET,
// path "/" and an empty description; a missing endpoint name is derived from
// the method and path. Method casing is kept as returned. Non-string
// prerequisites are converted to their textual form.
func ParseBlueprint(text string) (*mcpbuilder.Blueprint, error) {
	var data struct {
		Name          any              `json:"name"`
		Summary       any              `json:"summary"`
		Endpoints     []map[string]any `json:"endpoints"`
		Prerequisites []any            `json:"prerequisites"`
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, &mcpbuilder.GenerationError{Op: "parse", Err: &mcpbuilder.ParseError{Err: err}}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = errors.New("extra data after JSON value")
		}
		return nil, &mcpbuilder.GenerationError{Op: "parse", Err: &mcpbuilder.ParseError{Err: err}}
	}

	bp := &mcpbuilder.Blueprint{
		Name:    orDefault(data.Name, mcpbuilder.DefaultBlueprintName),
		Summary: orDefault(data.Summary, mcpbuilder.DefaultBlueprintSummary),
	}

	for _, item := range data.Endpoints {
		method, hasMethod := field(item, "method")
		path, hasPath := field(item, "path")

		name, ok := field(item, "name")
		if !ok {
			rawMethod := method
			if !hasMethod {
				rawMethod = "get"
			}
			rawPath := path
			if !hasPath {
				rawPath = "/"
			}
			name = mcpbuilder.Slugify(rawMethod + " " + rawPath)
		}
		if !hasMethod {
			method = "GET"
		}
		if !hasPath {
			path = "/"
		}
		description, _ := field(item, "description")

		bp.Endpoints = append(bp.Endpoints, mcpbuilder.EndpointSpec{
			Name:        name,
			Method:      method,
			Path:        path,
			Description: description,
		})
	}

	for _, p := range data.Prerequisites {
		bp.Prerequisites = append(bp.Prerequisites, stringify(p))
	}

	return bp, nil
}

// field returns item[key] as a string and whether it was present and non-null.
func field(item map[string]any, key string) (string, bool) {
	v, ok := item[key]
	if !ok || v == nil {
		return "", false
	}
	return stringify(v), true
}

// orDefault returns v as text, or def when v is a falsy JSON value.
func orDefault(v any, def string) string {
	if falsy(v) {
		return def
	}
	return stringify(v)
}

func falsy(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// stringify renders a decoded JSON value as text. Numbers keep their literal
// form; objects and arrays are re-encoded as compact JSON.
func stringify(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case map[string]any, []any:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Sprint(v)
		}
		return strings.TrimSuffix(buf.String(), "\n")
	default:
		return fmt.Sprint(v)
	}
}
