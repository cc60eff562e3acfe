package crawl_test

import (
	"testing"

	"github.com/fwojciec/mcpbuilder/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{2 * 1024 * 1024, "2.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, crawl.FormatBytes(tt.in), "FormatBytes(%d)", tt.in)
	}
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("is stable for identical content", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, crawl.ComputeHash("GET /users"), crawl.ComputeHash("GET /users"))
	})

	t.Run("differs for different content", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, crawl.ComputeHash("GET /users"), crawl.ComputeHash("GET /orders"))
	})

	t.Run("is 16 hex digits", func(t *testing.T) {
		t.Parallel()
		assert.Regexp(t, `^[0-9a-f]{16}$`, crawl.ComputeHash(""))
		assert.Regexp(t, `^[0-9a-f]{16}$`, crawl.ComputeHash("test"))
	})
}
