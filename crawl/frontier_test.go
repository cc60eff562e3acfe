package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/mcpbuilder/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFrontier_Pop_is_first_in_first_out(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	f.Push("https://example.com/a")
	f.Push("https://example.com/b")
	f.Push("https://example.com/c")

	for _, want := range []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"} {
		got, ok := f.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := f.Pop()
	assert.False(t, ok, "empty frontier should return false")
}

func TestFrontier_Push_keeps_duplicates_in_queue(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	f.Push("https://example.com/a")
	f.Push("https://example.com/a")

	assert.Equal(t, 2, f.Len())
}

func TestFrontier_Visit_rejects_already_visited(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.True(t, f.Visit("https://example.com/a"))
	assert.False(t, f.Visit("https://example.com/a"))
	assert.Equal(t, 1, f.Visited())
}

func TestFrontier_Seen(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	f.Push("https://example.com/queued")
	f.Visit("https://example.com/visited")

	assert.True(t, f.Seen("https://example.com/visited"))
	assert.False(t, f.Seen("https://example.com/queued"), "queued is not visited")
}

func TestFrontier_uses_exact_string_identity(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)
	f.Visit("https://example.com/a")

	assert.False(t, f.Seen("https://example.com/a#top"))
	assert.False(t, f.Seen("https://example.com/a/"))
}

func TestFrontier_exact_beyond_prefilter_capacity(t *testing.T) {
	t.Parallel()

	// A tiny prefilter saturates quickly; the visited set must stay exact.
	f := crawl.NewFrontier(10, 0.5)
	for i := 0; i < 500; i++ {
		f.Visit(fmt.Sprintf("https://example.com/%d", i))
	}

	for i := 500; i < 600; i++ {
		assert.False(t, f.Seen(fmt.Sprintf("https://example.com/%d", i)))
	}
	assert.Equal(t, 500, f.Visited())
}

func TestFrontier_concurrent_access(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				u := fmt.Sprintf("https://example.com/%d/%d", id, j)
				f.Push(u)
				f.Visit(u)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1000, f.Len())
	assert.Equal(t, 1000, f.Visited())
}
