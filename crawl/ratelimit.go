package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/mcpbuilder"
	"golang.org/x/time/rate"
)

var _ mcpbuilder.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests per host with a token bucket of
// burst 1. Host names are compared case-insensitively.
type DomainLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each host. A non-positive rps never waits.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limit: rate.Limit(rps),
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host may proceed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.limit <= 0 {
		return ctx.Err()
	}
	return d.limiterFor(host).Wait(ctx)
}

func (d *DomainLimiter) limiterFor(host string) *rate.Limiter {
	key := strings.ToLower(host)

	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.hosts[key]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[key] = l
	}
	return l
}
