package api

import (
	"bufio"
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the identifier given to every outgoing request.
const RequestIDHeader = "X-Request-Id"

// memCache caches successful GET responses of reference data (asset catalog,
// sector lists) for a TTL. Account data is never cached.
type memCache struct {
	base   http.RoundTripper
	store  *cache.Cache
	prefix string // path of the catalog endpoints under the backend url
}

func newMemCache(base http.RoundTripper, ttl time.Duration, prefix string) *memCache {
	return &memCache{base: base, store: cache.New(ttl, 2*ttl), prefix: prefix}
}

// cacheable reports whether the request targets reference data.
func (c *memCache) cacheable(req *http.Request) bool {
	return req.Method == http.MethodGet && strings.HasPrefix(req.URL.Path, c.prefix)
}

// RoundTrip serves cached responses when possible, and stores successful ones.
func (c *memCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if !c.cacheable(req) {
		return c.base.RoundTrip(req)
	}
	key := req.Method + " " + req.URL.String()
	if v, ok := c.store.Get(key); ok {
		if resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(v.([]byte))), req); err == nil {
			return resp, nil
		}
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// DumpResponse leaves an unread copy of the body in resp.
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		slog.Warn("cache write err (ignored)", "err", err)
		return resp, nil
	}
	c.store.SetDefault(key, content)
	return resp, nil
}

// Flush drops every cached response.
func (c *memCache) Flush() { c.store.Flush() }

// pacer limits the rate of requests actually sent to the backend.
type pacer struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (p *pacer) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := p.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return p.base.RoundTrip(req)
}

// tagger gives each request a unique id and logs its outcome.
type tagger struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (t *tagger) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	id := uuid.NewString()
	req.Header.Set(RequestIDHeader, id)
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Warn("http request failed", "method", req.Method, "path", req.URL.Path, "request_id", id, "err", err)
		return nil, err
	}
	t.log.Debug("http", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode, "request_id", id, "elapsed", time.Since(start))
	return resp, nil
}
