// Package orchestrate turns a documentation corpus into a Blueprint and
// drives the full URL-to-project pipeline.
package orchestrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/mcpbuilder"
	"github.com/fwojciec/mcpbuilder/heuristic"
)

// Instructions opens every generation prompt. It describes the JSON shape
// expected back from the model.
const Instructions = "You are an expert software engineer building Model Context Protocol (MCP) servers. " +
	"Given the following API documentation, extract the key REST endpoints and return a JSON " +
	"object with the fields: name (string), summary (string), endpoints (list of {name, method, path, description}), " +
	"and prerequisites (list of strings describing required auth or setup)."

// HealthCheckEndpoint is appended to any blueprint that has no endpoints.
var HealthCheckEndpoint = mcpbuilder.EndpointSpec{
	Name:        "health_check",
	Method:      "GET",
	Path:        "/",
	Description: "Fallback endpoint returning API availability information.",
}

// Orchestrator builds blueprints with a primary generator and falls back to
// the heuristic generator when the primary fails.
type Orchestrator struct {
	Primary      mcpbuilder.BlueprintGenerator
	Fallback     mcpbuilder.BlueprintGenerator
	TokenCounter mcpbuilder.TokenCounter // optional, used for logging only
	Logger       *slog.Logger
}

// NewOrchestrator creates an Orchestrator. A nil primary means the heuristic
// generator is used directly.
func NewOrchestrator(primary mcpbuilder.BlueprintGenerator, logger *slog.Logger) *Orchestrator {
	fallback := heuristic.NewGenerator("")
	if primary == nil {
		primary = fallback
	}
	return &Orchestrator{
		Primary:  primary,
		Fallback: fallback,
		Logger:   logger,
	}
}

// BuildPrompt assembles the generation prompt from the instruction block, an
// optional title line and the documents separated by blank lines.
func BuildPrompt(docs []string, title string) string {
	var sb strings.Builder
	sb.WriteString(Instructions)
	if title != "" {
		sb.WriteString("\nDocumentation title: ")
		sb.WriteString(title)
	}
	sb.WriteString("\n\nDocumentation:\n")
	sb.WriteString(strings.Join(docs, "\n\n"))
	return sb.String()
}

// BuildBlueprint never fails. Any error from the primary generator, including
// a nil blueprint, is logged and the fallback runs on the same prompt. The
// result always has at least one endpoint.
func (o *Orchestrator) BuildBlueprint(ctx context.Context, docs []string, title string) *mcpbuilder.Blueprint {
	prompt := BuildPrompt(docs, title)
	o.logPromptSize(ctx, prompt)

	bp, err := o.generate(ctx, o.primary(), prompt)
	if err == nil && bp == nil {
		err = &mcpbuilder.GenerationError{Op: "generate", Err: mcpbuilder.Errorf(mcpbuilder.EINTERNAL, "generator returned no blueprint")}
	}
	if err != nil {
		o.logger().Error("generation failed, falling back to heuristic parser", "err", err)
		bp, err = o.generate(ctx, o.fallback(), prompt)
		if err != nil || bp == nil {
			o.logger().Error("fallback generation failed", "err", err)
			bp = &mcpbuilder.Blueprint{Name: mcpbuilder.DefaultBlueprintName, Summary: heuristic.Summary}
		}
	}

	if len(bp.Endpoints) == 0 {
		bp.Endpoints = append(bp.Endpoints, HealthCheckEndpoint)
	}
	return bp
}

// generate calls g and converts a panic into a GenerationError.
func (o *Orchestrator) generate(ctx context.Context, g mcpbuilder.BlueprintGenerator, prompt string) (bp *mcpbuilder.Blueprint, err error) {
	defer func() {
		if r := recover(); r != nil {
			bp = nil
			err = &mcpbuilder.GenerationError{Op: "generate", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return g.GenerateBlueprint(ctx, prompt)
}

func (o *Orchestrator) logPromptSize(ctx context.Context, prompt string) {
	if o.TokenCounter == nil {
		return
	}
	n, err := o.TokenCounter.CountTokens(ctx, prompt)
	if err != nil {
		o.logger().Warn("count prompt tokens", "err", err)
		return
	}
	o.logger().Debug("prompt built", "tokens", n, "bytes", len(prompt))
}

func (o *Orchestrator) primary() mcpbuilder.BlueprintGenerator {
	if o.Primary == nil {
		return o.fallback()
	}
	return o.Primary
}

func (o *Orchestrator) fallback() mcpbuilder.BlueprintGenerator {
	if o.Fallback == nil {
		o.Fallback = heuristic.NewGenerator("")
	}
	return o.Fallback
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
