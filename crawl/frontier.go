package crawl

import (
	"sync"

	"github.com/fwojciec/mcpbuilder"
	"github.com/fwojciec/mcpbuilder/bloom"
)

// Compile-time interface verification.
var _ mcpbuilder.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL queue with an exact visited set.
// A Bloom filter answers most "never visited" lookups before the map is
// consulted. It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu      sync.Mutex
	filter  *bloom.Filter
	visited map[string]struct{}
	queue   []string
}

// NewFrontier creates a new Frontier whose prefilter is sized for n
// expected URLs with the given false positive rate.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		filter:  bloom.NewFilter(n, fpRate),
		visited: make(map[string]struct{}),
	}
}

// Push appends a URL to the back of the queue.
func (f *Frontier) Push(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, url)
}

// Pop removes and returns the URL at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Visit marks the URL as visited.
// Returns false if it had already been visited.
func (f *Frontier) Visit(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen(url) {
		return false
	}
	f.filter.Add(url)
	f.visited[url] = struct{}{}
	return true
}

// Seen returns true if the URL has been visited.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen(url)
}

// Visited returns the number of distinct URLs visited so far.
func (f *Frontier) Visited() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

func (f *Frontier) seen(url string) bool {
	if !f.filter.MayContain(url) {
		return false
	}
	_, ok := f.visited[url]
	return ok
}
