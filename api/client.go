// Package api is the JSON-over-HTTP client of the investment platform
// backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Client calls the backend. It is safe for concurrent use.
type Client struct {
	base  *url.URL
	http  *http.Client
	cache *memCache // nil when caching is disabled
	log   *slog.Logger
}

type options struct {
	transport http.RoundTripper
	timeout   time.Duration
	cacheTTL  time.Duration
	limit     rate.Limit
	burst     int
	log       *slog.Logger
}

// Option configures a Client.
type Option func(*options)

// WithTransport sets the base transport, http.DefaultTransport by default.
func WithTransport(t http.RoundTripper) Option { return func(o *options) { o.transport = t } }

// WithTimeout bounds each request, 10s by default.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithCache caches reference data for ttl. A non-positive ttl disables caching.
func WithCache(ttl time.Duration) Option { return func(o *options) { o.cacheTTL = ttl } }

// WithRateLimit paces requests to r per second with bursts of burst.
func WithRateLimit(r float64, burst int) Option {
	return func(o *options) { o.limit, o.burst = rate.Limit(r), burst }
}

// WithLogger sets the logger, slog.Default() by default.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.log = l } }

// New returns a client of the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: want an absolute url", baseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	o := options{
		transport: http.DefaultTransport,
		timeout:   10 * time.Second,
		limit:     rate.Inf,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{base: base, log: o.log}
	rt := o.transport
	if o.limit != rate.Inf {
		rt = &pacer{base: rt, limiter: rate.NewLimiter(o.limit, o.burst)}
	}
	if o.cacheTTL > 0 {
		c.cache = newMemCache(rt, o.cacheTTL, base.JoinPath("ativos").Path)
		rt = c.cache
	}
	rt = &tagger{base: rt, log: o.log}
	c.http = &http.Client{Transport: rt, Timeout: o.timeout}
	return c, nil
}

// BaseURL returns the backend url the client talks to.
func (c *Client) BaseURL() string { return c.base.String() }

// FlushCache forgets cached reference data.
func (c *Client) FlushCache() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

// get performs a GET on path and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, fallback string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, fallback, out)
}

// post performs a POST of body as JSON on path and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body any, fallback string, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, fallback, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, fallback string, out any) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("cannot encode %s request: %w", path, err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return fmt.Errorf("cannot create http request %q: %w", u, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// the caller lost interest, not a backend failure
			return ctx.Err()
		}
		return &Error{Fallback: fallback, Err: err}
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return &Error{Status: resp.StatusCode, Fallback: fallback, Err: fmt.Errorf("cannot read http body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Detail: detailOf(buf.Bytes()), Fallback: fallback}
	}
	if out == nil || len(bytes.TrimSpace(buf.Bytes())) == 0 {
		return nil
	}
	if err := json.Unmarshal(buf.Bytes(), out); err != nil {
		return fmt.Errorf("cannot decode %s %s response: %w", method, path, err)
	}
	return nil
}
