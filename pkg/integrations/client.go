package integrations

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghprofile/pkg/buildinfo"
	"github.com/matzehuels/ghprofile/pkg/cache"
	"github.com/matzehuels/ghprofile/pkg/errors"
	"github.com/matzehuels/ghprofile/pkg/httputil"
	"github.com/matzehuels/ghprofile/pkg/observability"
)

// ClientConfig configures a [Client]. Only BaseURL is required.
type ClientConfig struct {
	// BaseURL is prepended to relative resource paths.
	BaseURL string

	// Token is sent as a bearer credential on every request when non-empty.
	Token string

	// Headers are added to every request (e.g. Accept).
	Headers map[string]string

	// Attempts is the number of tries per request. Values below 1 mean 1.
	// Only transport failures and 5xx responses are retried.
	Attempts int

	// Cache stores OK response bodies. Nil disables caching.
	Cache cache.Cache

	// CacheTTL is the lifetime of cached bodies. Zero selects [cache.TTLHTTP].
	CacheTTL time.Duration

	// Logger receives a warning for every non-OK response. Nil uses the
	// charmbracelet default logger.
	Logger *log.Logger

	// HTTPClient overrides the transport. Nil uses [NewHTTPClient].
	HTTPClient *http.Client
}

// Client is the single entry point for remote fetches. It resolves logical
// resource paths against a base URL, attaches credentials, maps statuses to
// sentinel errors, and optionally caches bodies.
//
// A Client is safe for concurrent use.
type Client struct {
	http     *http.Client
	base     string
	headers  map[string]string
	attempts int
	cache    cache.Cache
	ttl      time.Duration
	logger   *log.Logger
}

// NewClient creates a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if cfg.Token != "" {
		headers["Authorization"] = "Bearer " + cfg.Token
	}

	c := &Client{
		http:     cfg.HTTPClient,
		base:     strings.TrimRight(cfg.BaseURL, "/"),
		headers:  headers,
		attempts: max(cfg.Attempts, 1),
		cache:    cfg.Cache,
		ttl:      cfg.CacheTTL,
		logger:   cfg.Logger,
	}
	if c.http == nil {
		c.http = NewHTTPClient(0)
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	} else if cfg.Token != "" {
		// Entries fetched with a token may include private data.
		c.cache = cache.Scoped(c.cache, "tok:"+tokenScope(cfg.Token)+":")
	}
	if c.ttl <= 0 {
		c.ttl = cache.TTLHTTP
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// BaseURL returns the base URL relative resources are joined to.
func (c *Client) BaseURL() string { return c.base }

// Resolve returns the absolute URL for resource. Absolute http(s) URLs are
// returned unchanged; anything else is joined to the base URL with exactly
// one slash.
func (c *Client) Resolve(resource string) string {
	if isAbsolute(resource) {
		return resource
	}
	return c.base + "/" + strings.TrimLeft(resource, "/")
}

// Fetch retrieves resource and JSON-decodes the body into v. A body that
// does not decode fails with [errors.ErrCodeParse] and is not cached.
func (c *Client) Fetch(ctx context.Context, resource string, v any) error {
	body, key, hit, err := c.get(ctx, resource, false)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		if hit {
			_ = c.cache.Delete(ctx, key)
		}
		return errors.Wrap(errors.ErrCodeParse, err, "decode %s", resource)
	}
	if !hit {
		c.store(ctx, key, body)
	}
	return nil
}

// FetchRaw retrieves resource and returns its body unparsed.
func (c *Client) FetchRaw(ctx context.Context, resource string) ([]byte, error) {
	body, key, hit, err := c.get(ctx, resource, true)
	if err != nil {
		return nil, err
	}
	if !hit {
		c.store(ctx, key, body)
	}
	return body, nil
}

// get returns the body of resource from the cache or the network, along with
// its cache key and whether it was a hit. Callers store fresh bodies once
// they have accepted them.
func (c *Client) get(ctx context.Context, resource string, raw bool) (body []byte, key string, hit bool, err error) {
	target := c.Resolve(resource)
	key = cache.HTTPKey(target, raw)

	if data, ok, _ := c.cache.Get(ctx, key); ok {
		observability.Cache().OnCacheHit(ctx, key)
		return data, key, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, key)

	err = httputil.Retry(ctx, c.attempts, httputil.DefaultRetryDelay, func() error {
		var err error
		body, err = c.do(ctx, resource, target)
		return err
	})
	if err != nil {
		return nil, key, false, err
	}
	return body, key, false, nil
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if err := c.cache.Set(ctx, key, body, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(body))
	}
}

func (c *Client) do(ctx context.Context, resource, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", resource, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(fmt.Errorf("%w: %s: %v", ErrNetwork, resource, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("fetch failed", "resource", resource, "status", resp.StatusCode)
		serr := newStatusError(resource, resp)
		if resp.StatusCode >= 500 {
			return nil, httputil.Retryable(serr)
		}
		return nil, serr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: read %s: %v", ErrNetwork, resource, err))
	}
	return body, nil
}

func isAbsolute(resource string) bool {
	u, err := url.Parse(resource)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func tokenScope(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
