package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/mcpbuilder"
	"github.com/fwojciec/mcpbuilder/mock"
	mcpslog "github.com/fwojciec/mcpbuilder/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_GenerateBlueprint(t *testing.T) {
	t.Parallel()

	t.Run("logs endpoint count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.BlueprintGenerator{
			GenerateBlueprintFn: func(context.Context, string) (*mcpbuilder.Blueprint, error) {
				return &mcpbuilder.Blueprint{Endpoints: []mcpbuilder.EndpointSpec{{Name: "a"}, {Name: "b"}}}, nil
			},
		}

		g := mcpslog.NewLoggingGenerator(inner, "gemini", slog.New(slog.NewTextHandler(&buf, nil)))
		bp, err := g.GenerateBlueprint(context.Background(), "prompt")

		require.NoError(t, err)
		assert.Len(t, bp.Endpoints, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=\"generate blueprint\"")
		assert.Contains(t, output, "generator=gemini")
		assert.Contains(t, output, "prompt_bytes=6")
		assert.Contains(t, output, "endpoints=2")
	})

	t.Run("passes error through and logs it", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cause := &mcpbuilder.GenerationError{Op: "request", Err: errors.New("timeout")}
		inner := &mock.BlueprintGenerator{
			GenerateBlueprintFn: func(context.Context, string) (*mcpbuilder.Blueprint, error) {
				return nil, cause
			},
		}

		g := mcpslog.NewLoggingGenerator(inner, "gemini", slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := g.GenerateBlueprint(context.Background(), "prompt")

		assert.Same(t, cause, err)
		assert.Contains(t, buf.String(), "endpoints=0")
		assert.Contains(t, buf.String(), "timeout")
	})
}
