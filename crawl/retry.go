package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/mcpbuilder"
)

// FetchFunc fetches a single URL.
type FetchFunc func(ctx context.Context, url string) (*mcpbuilder.Response, error)

// RetryFunc is told about every failed attempt that will be retried.
// attempt is the number of the attempt about to be made, starting at 2.
type RetryFunc func(url string, attempt int, wait time.Duration, err error)

// DefaultRetryDelays is the backoff used for --retry: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch once, then once more after each delay while
// it keeps failing. The error of the final attempt is returned. Canceling
// ctx during a wait returns the context error.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, onRetry RetryFunc) (*mcpbuilder.Response, error) {
	resp, err := fetch(ctx, url)
	for i, wait := range delays {
		if err == nil || ctx.Err() != nil {
			break
		}
		if onRetry != nil {
			onRetry(url, i+2, wait, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		resp, err = fetch(ctx, url)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return resp, nil
}
