package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/mcpbuilder"
	"github.com/temoto/robotstxt"
)

// maxRobotsBytes limits how much of a robots.txt file is read.
const maxRobotsBytes = 512 * 1024

// Ensure RobotsPolicy implements mcpbuilder.RobotsPolicy.
var _ mcpbuilder.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy enforces robots.txt rules for the configured user agent.
// Each host's robots.txt is fetched once and cached for the policy's lifetime.
// Fetches for different hosts run concurrently; callers asking about a host
// whose robots.txt is in flight wait for that fetch.
type RobotsPolicy struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	hosts map[string]*robotsEntry
}

// robotsEntry holds one host's rules. data is valid once ready is closed.
type robotsEntry struct {
	ready chan struct{}
	data  *robotstxt.RobotsData
}

// NewRobotsPolicy creates a RobotsPolicy using the fetcher options for its
// own robots.txt requests.
func NewRobotsPolicy(opts ...Option) *RobotsPolicy {
	f := NewFetcher(opts...)
	return &RobotsPolicy{
		client:    f.client,
		userAgent: f.userAgent,
		hosts:     make(map[string]*robotsEntry),
	}
}

// Allowed reports whether rawURL may be fetched. Unparseable URLs are
// refused. A robots.txt that cannot be fetched or parsed allows everything;
// a 4xx status allows everything and a 5xx status disallows everything.
func (p *RobotsPolicy) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	data := p.rules(ctx, u)
	if data == nil {
		return true
	}
	return data.TestAgent(u.RequestURI(), p.userAgent)
}

func (p *RobotsPolicy) rules(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	host := strings.ToLower(u.Host)

	p.mu.Lock()
	if e, ok := p.hosts[host]; ok {
		p.mu.Unlock()
		select {
		case <-e.ready:
			return e.data
		case <-ctx.Done():
			return nil
		}
	}
	e := &robotsEntry{ready: make(chan struct{})}
	p.hosts[host] = e
	p.mu.Unlock()

	e.data = p.fetch(ctx, u.Scheme, u.Host)
	// Cancellation is not a verdict on the host; try again next time.
	if ctx.Err() != nil {
		p.mu.Lock()
		delete(p.hosts, host)
		p.mu.Unlock()
	}
	close(e.ready)
	return e.data
}

func (p *RobotsPolicy) fetch(ctx context.Context, scheme, host string) *robotstxt.RobotsData {
	robotsURL := (&url.URL{Scheme: scheme, Host: host, Path: "/robots.txt"}).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return nil
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil
	}
	return data
}
