package mcpbuilder

import "context"

// URLFrontier manages a FIFO crawl queue and the set of visited URLs.
// URLs are compared by exact string identity.
type URLFrontier interface {
	// Push appends a URL to the queue. Already queued URLs may be queued again;
	// duplicates are skipped when popped.
	Push(url string)

	// Pop removes and returns the oldest queued URL.
	// Returns false if the queue is empty.
	Pop() (string, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Visit marks the URL as visited.
	// Returns false if the URL was already visited.
	Visit(url string) bool

	// Seen returns true if the URL has been visited.
	Seen(url string) bool

	// Visited returns the number of distinct URLs marked as visited.
	Visited() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
