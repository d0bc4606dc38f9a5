package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrBodyTooLarge is returned when a response body exceeds the configured
// size cap. The session loop classifies this as resource exhaustion and
// moves on to the next root rather than blacklisting the URL.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// Client performs the HTTP fetches for the random walk. Each request
// carries a User-Agent chosen uniformly at random from the configured
// pool, so consecutive hops do not share an obvious fingerprint.
//
// Status failures (non-2xx) are absorbed here and surface as an empty
// body with a nil error: to the walk, a page that refuses to serve links
// is indistinguishable from a page that has none, and both end up on the
// dead-end path. Transport failures are returned as errors so the walk
// can count them separately, though it handles them the same way.
type Client struct {
	// client is the underlying HTTP client. Its Timeout field carries
	// the per-request timeout.
	client *http.Client

	// userAgents is the pool to draw the User-Agent header from.
	userAgents []string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// limiter caps the outbound request rate. nil means no cap.
	limiter *rate.Limiter

	// rand drives the user-agent choice. Injectable for deterministic tests.
	rand *rand.Rand

	// logger records per-request outcomes at debug level.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithRateLimit caps outbound requests at rps per second.
// Zero or negative disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithRand sets the random source used for user-agent selection.
func WithRand(r *rand.Rand) Option {
	return func(c *Client) {
		c.rand = r
	}
}

// WithLogger sets the logger for per-request debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client. Useful for tests
// and for callers that need custom transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// New creates a Client drawing User-Agent headers from the given pool.
// The pool must be non-empty; config validation guarantees this for the
// production path.
func New(userAgents []string, opts ...Option) *Client {
	c := &Client{
		client:      &http.Client{Timeout: 5 * time.Second},
		userAgents:  userAgents,
		maxBodySize: 5 * 1024 * 1024, // 5MB
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch performs an HTTP GET and returns the response body as text.
//
// Return contract:
//   - (body, nil): the page was fetched
//   - ("", nil): the server answered with a non-2xx status; treated as a
//     page with no links rather than an error
//   - ("", err): the request could not be completed (transport failure,
//     context cancellation, or a body over the size cap)
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	req.Header.Set("User-Agent", c.userAgents[c.rand.Intn(len(c.userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "url", rawURL, "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("request rejected", "url", rawURL, "status", resp.StatusCode)
		return "", nil
	}

	// Read one byte past the cap so an exactly-at-limit body still passes.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > c.maxBodySize {
		c.logger.Debug("response too large", "url", rawURL, "limit", c.maxBodySize)
		return "", ErrBodyTooLarge
	}

	c.logger.Debug("fetched", "url", rawURL, "status", resp.StatusCode, "bytes", len(body))
	return string(body), nil
}
