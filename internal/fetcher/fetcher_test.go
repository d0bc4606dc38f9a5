package fetcher

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetch tests the fetch contract against a local HTTP server.
func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the body of a successful response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer srv.Close()

		c := New([]string{"test-agent"})
		body, err := c.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(body, "hello") {
			t.Errorf("expected body to contain 'hello', got %q", body)
		}
	})

	t.Run("sends a user-agent from the pool", func(t *testing.T) {
		t.Parallel()

		pool := []string{"agent-a", "agent-b", "agent-c"}
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		c := New(pool, WithRand(rand.New(rand.NewSource(7))))
		if _, err := c.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		found := false
		for _, ua := range pool {
			if got == ua {
				found = true
			}
		}
		if !found {
			t.Errorf("expected User-Agent from the pool, got %q", got)
		}
	})

	t.Run("non-2xx status yields empty body and nil error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		c := New([]string{"test-agent"})
		body, err := c.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("expected status failures to be absorbed, got %v", err)
		}
		if body != "" {
			t.Errorf("expected empty body, got %q", body)
		}
	})

	t.Run("transport failure returns an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // nothing is listening anymore

		c := New([]string{"test-agent"})
		if _, err := c.Fetch(context.Background(), srv.URL); err == nil {
			t.Fatal("expected a transport error")
		}
	})

	t.Run("oversized body returns ErrBodyTooLarge", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
		}))
		defer srv.Close()

		c := New([]string{"test-agent"}, WithMaxBodySize(1024))
		_, err := c.Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrBodyTooLarge) {
			t.Fatalf("expected ErrBodyTooLarge, got %v", err)
		}
	})

	t.Run("body exactly at the limit passes", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
		}))
		defer srv.Close()

		c := New([]string{"test-agent"}, WithMaxBodySize(1024))
		body, err := c.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(body) != 1024 {
			t.Errorf("expected 1024 bytes, got %d", len(body))
		}
	})

	t.Run("per-request timeout applies", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer srv.Close()

		c := New([]string{"test-agent"}, WithTimeout(50*time.Millisecond))
		start := time.Now()
		_, err := c.Fetch(context.Background(), srv.URL)
		if err == nil {
			t.Fatal("expected a timeout error")
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("fetch took %v, expected the timeout to cut it short", elapsed)
		}
	})

	t.Run("rate limit respects context cancellation", func(t *testing.T) {
		t.Parallel()

		c := New([]string{"test-agent"}, WithRateLimit(0.001))
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		// First token is available immediately; the second waits ~1000s
		// and must be cut off by the context instead.
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
		defer srv.Close()

		if _, err := c.Fetch(ctx, srv.URL); err != nil {
			t.Fatalf("first fetch should pass the limiter, got %v", err)
		}
		if _, err := c.Fetch(ctx, srv.URL); err == nil {
			t.Fatal("expected the limiter wait to fail on context timeout")
		}
	})
}
