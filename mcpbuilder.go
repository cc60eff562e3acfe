// Package mcpbuilder turns a web-hosted API documentation site into a
// blueprint of the API's endpoints and scaffolds an MCP server from it.
// It crawls the documentation, asks a generative model to describe the
// endpoints, falls back to a local heuristic when the model is unavailable,
// and renders a project skeleton from the result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, http/).
package mcpbuilder
