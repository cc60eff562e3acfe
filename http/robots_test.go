package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mcphttp "github.com/fwojciec/mcpbuilder/http"
	"github.com/stretchr/testify/assert"
)

func TestRobotsPolicy_Allowed(t *testing.T) {
	t.Parallel()

	t.Run("applies disallow rules", func(t *testing.T) {
		t.Parallel()

		srv := newRobotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /private/\n", nil)
		policy := mcphttp.NewRobotsPolicy(mcphttp.WithClient(srv.Client()))

		assert.True(t, policy.Allowed(context.Background(), srv.URL+"/docs/intro"))
		assert.False(t, policy.Allowed(context.Background(), srv.URL+"/private/secret"))
	})

	t.Run("matches rules for the configured agent", func(t *testing.T) {
		t.Parallel()

		srv := newRobotsServer(t, http.StatusOK, "User-agent: probe\nDisallow: /\n\nUser-agent: *\nDisallow:\n", nil)

		probe := mcphttp.NewRobotsPolicy(mcphttp.WithClient(srv.Client()), mcphttp.WithUserAgent("probe"))
		other := mcphttp.NewRobotsPolicy(mcphttp.WithClient(srv.Client()), mcphttp.WithUserAgent("other"))

		assert.False(t, probe.Allowed(context.Background(), srv.URL+"/docs"))
		assert.True(t, other.Allowed(context.Background(), srv.URL+"/docs"))
	})

	t.Run("missing robots.txt allows everything", func(t *testing.T) {
		t.Parallel()

		srv := newRobotsServer(t, http.StatusNotFound, "", nil)
		policy := mcphttp.NewRobotsPolicy(mcphttp.WithClient(srv.Client()))

		assert.True(t, policy.Allowed(context.Background(), srv.URL+"/anything"))
	})

	t.Run("server error disallows everything", func(t *testing.T) {
		t.Parallel()

		srv := newRobotsServer(t, http.StatusServiceUnavailable, "", nil)
		policy := mcphttp.NewRobotsPolicy(mcphttp.WithClient(srv.Client()))

		assert.False(t, policy.Allowed(context.Background(), srv.URL+"/docs"))
	})

	t.Run("fetches robots.txt once per host", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := newRobotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /private/\n", &hits)
		policy := mcphttp.NewRobotsPolicy(mcphttp.WithClient(srv.Client()))

		policy.Allowed(context.Background(), srv.URL+"/a")
		policy.Allowed(context.Background(), srv.URL+"/b")
		policy.Allowed(context.Background(), srv.URL+"/private/c")

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("slow robots.txt on one host does not block another", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			http.NotFound(w, r)
		}))
		t.Cleanup(slow.Close)
		t.Cleanup(func() { close(release) })
		fast := newRobotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /private/\n", nil)
		policy := mcphttp.NewRobotsPolicy()

		go policy.Allowed(context.Background(), slow.URL+"/docs")
		time.Sleep(20 * time.Millisecond)

		done := make(chan bool)
		go func() { done <- policy.Allowed(context.Background(), fast.URL+"/private/x") }()
		select {
		case allowed := <-done:
			assert.False(t, allowed)
		case <-time.After(2 * time.Second):
			t.Fatal("blocked behind another host's robots.txt fetch")
		}
	})

	t.Run("concurrent callers share one fetch per host", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := newRobotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /private/\n", &hits)
		policy := mcphttp.NewRobotsPolicy(mcphttp.WithClient(srv.Client()))

		var wg sync.WaitGroup
		for range 8 {
			wg.Go(func() {
				assert.False(t, policy.Allowed(context.Background(), srv.URL+"/private/x"))
			})
		}
		wg.Wait()

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("unreachable host allows everything", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		policy := mcphttp.NewRobotsPolicy()

		assert.True(t, policy.Allowed(context.Background(), addr+"/docs"))
	})

	t.Run("invalid URL is refused", func(t *testing.T) {
		t.Parallel()

		policy := mcphttp.NewRobotsPolicy()

		assert.False(t, policy.Allowed(context.Background(), "not a url"))
	})
}

// newRobotsServer serves body with status at /robots.txt and 200 elsewhere.
// If hits is non-nil it counts robots.txt requests.
func newRobotsServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
