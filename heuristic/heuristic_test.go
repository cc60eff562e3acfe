package heuristic_test

import (
	"context"
	"testing"

	"github.com/fwojciec/mcpbuilder"
	"github.com/fwojciec/mcpbuilder/heuristic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("returns endpoints in order of appearance", func(t *testing.T) {
		t.Parallel()

		endpoints := heuristic.ExtractEndpoints("GET /users POST /users DELETE /users/{id}")

		require.Len(t, endpoints, 3)
		assert.Equal(t, mcpbuilder.EndpointSpec{
			Name: "get_users", Method: "GET", Path: "/users",
			Description: "Auto-detected endpoint for GET /users",
		}, endpoints[0])
		assert.Equal(t, "POST", endpoints[1].Method)
		assert.Equal(t, "/users", endpoints[1].Path)
		assert.Equal(t, "post_users", endpoints[1].Name)
		assert.Equal(t, "DELETE", endpoints[2].Method)
		assert.Equal(t, "/users/{id}", endpoints[2].Path)
		assert.Equal(t, "delete_users_id", endpoints[2].Name)
	})

	t.Run("finds endpoints inside prose", func(t *testing.T) {
		t.Parallel()

		text := `
		The API exposes GET /users and POST /users endpoints. Use DELETE /users/{id} to remove.
		`

		endpoints := heuristic.ExtractEndpoints(text)

		var paths []string
		for _, ep := range endpoints {
			paths = append(paths, ep.Path)
		}
		assert.Equal(t, []string{"/users", "/users", "/users/{id}"}, paths)
	})

	t.Run("normalizes method case", func(t *testing.T) {
		t.Parallel()

		endpoints := heuristic.ExtractEndpoints("patch /items/{item_id} and Head /health")

		require.Len(t, endpoints, 2)
		assert.Equal(t, "PATCH", endpoints[0].Method)
		assert.Equal(t, "patch_items_item_id", endpoints[0].Name)
		assert.Equal(t, "HEAD", endpoints[1].Method)
		assert.Equal(t, "Auto-detected endpoint for HEAD /health", endpoints[1].Description)
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		t.Parallel()

		endpoints := heuristic.ExtractEndpoints("GET /a GET /a GET /a")

		assert.Len(t, endpoints, 3)
	})

	t.Run("accepts URL-safe path characters", func(t *testing.T) {
		t.Parallel()

		endpoints := heuristic.ExtractEndpoints("PUT /v1/files/report.v2:publish-now?force=true")

		require.Len(t, endpoints, 1)
		assert.Equal(t, "/v1/files/report.v2:publish-now", endpoints[0].Path)
	})

	t.Run("matches bare slash and multi-whitespace separator", func(t *testing.T) {
		t.Parallel()

		endpoints := heuristic.ExtractEndpoints("OPTIONS\t\n /")

		require.Len(t, endpoints, 1)
		assert.Equal(t, "/", endpoints[0].Path)
		assert.Equal(t, "options", endpoints[0].Name)
	})

	t.Run("ignores methods without a path", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, heuristic.ExtractEndpoints("GET users, then POST it"))
		assert.Empty(t, heuristic.ExtractEndpoints("no endpoints here"))
	})

	t.Run("matches method words embedded in longer words", func(t *testing.T) {
		t.Parallel()

		endpoints := heuristic.ExtractEndpoints("FORGET /cache")

		require.Len(t, endpoints, 1)
		assert.Equal(t, "GET", endpoints[0].Method)
		assert.Equal(t, "/cache", endpoints[0].Path)
	})
}

func TestGenerator_GenerateBlueprint(t *testing.T) {
	t.Parallel()

	t.Run("builds blueprint from prompt endpoints", func(t *testing.T) {
		t.Parallel()

		bp, err := heuristic.NewGenerator("").GenerateBlueprint(context.Background(), "GET /items")

		require.NoError(t, err)
		assert.Equal(t, mcpbuilder.DefaultBlueprintName, bp.Name)
		assert.Equal(t, heuristic.Summary, bp.Summary)
		require.Len(t, bp.Endpoints, 1)
		assert.Equal(t, "/items", bp.Endpoints[0].Path)
		assert.Empty(t, bp.Prerequisites)
	})

	t.Run("uses configured name", func(t *testing.T) {
		t.Parallel()

		bp, err := heuristic.NewGenerator("PetsMCP").GenerateBlueprint(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, "PetsMCP", bp.Name)
		assert.Empty(t, bp.Endpoints)
	})
}
