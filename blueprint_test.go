package mcpbuilder_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/mcpbuilder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"method and path parameter", "GET /users/{id}", "get_users_id"},
		{"collapses separator runs", "POST  //orders--items", "post_orders_items"},
		{"trims leading and trailing separators", "__Hello World__", "hello_world"},
		{"keeps digits", "GET /v2/items", "get_v2_items"},
		{"empty input falls back", "", "endpoint"},
		{"only separators falls back", "/{}/", "endpoint"},
		{"non-ascii letters become separators", "GET /café", "get_caf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mcpbuilder.Slugify(tt.value))
		})
	}
}

func TestBlueprint_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes empty arrays for nil lists", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(mcpbuilder.Blueprint{Name: "Pets", Summary: "Pet store"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Pets","summary":"Pet store","endpoints":[],"prerequisites":[]}`, string(data))
	})

	t.Run("writes endpoint fields", func(t *testing.T) {
		t.Parallel()

		bp := &mcpbuilder.Blueprint{
			Name:    "Pets",
			Summary: "Pet store",
			Endpoints: []mcpbuilder.EndpointSpec{
				{Name: "get_pets", Method: "GET", Path: "/pets", Description: "List pets"},
			},
			Prerequisites: []string{"Set API_KEY"},
		}

		data, err := json.Marshal(bp)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"name": "Pets",
			"summary": "Pet store",
			"endpoints": [{"name": "get_pets", "method": "GET", "path": "/pets", "description": "List pets"}],
			"prerequisites": ["Set API_KEY"]
		}`, string(data))
	})
}
