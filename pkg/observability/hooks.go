// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the defaults are no-ops.
// The CLI registers logging implementations in verbose mode, and embedders can
// register their own (Prometheus counters, OpenTelemetry spans) at startup
// without ghprofile depending on those backends.
//
//	observability.SetProfileHooks(&myHooks{})
//
//	observability.Profile().OnStepStart(ctx, "octocat", "repositories")
//	// ... fetch ...
//	observability.Profile().OnStepComplete(ctx, "octocat", "repositories", took, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Profile Hooks
// =============================================================================

// ProfileHooks receives events from profile builds.
type ProfileHooks interface {
	OnBuildStart(ctx context.Context, username string)
	OnBuildComplete(ctx context.Context, username string, issues int, duration time.Duration, err error)

	// OnStepStart and OnStepComplete bracket each aggregation step.
	// err is non-nil when the step left its field unavailable.
	OnStepStart(ctx context.Context, username, step string)
	OnStepComplete(ctx context.Context, username, step string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the response cache.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
	OnCacheSet(ctx context.Context, key string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from API requests.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response of any status.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records a transport failure (no response at all).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopProfileHooks is a no-op implementation of ProfileHooks.
type NoopProfileHooks struct{}

func (NoopProfileHooks) OnBuildStart(context.Context, string)                                  {}
func (NoopProfileHooks) OnBuildComplete(context.Context, string, int, time.Duration, error)    {}
func (NoopProfileHooks) OnStepStart(context.Context, string, string)                           {}
func (NoopProfileHooks) OnStepComplete(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	profileHooks ProfileHooks = NoopProfileHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	httpHooks    HTTPHooks    = NoopHTTPHooks{}
	hooksMu      sync.RWMutex
)

// SetProfileHooks registers custom profile hooks. Nil is ignored.
func SetProfileHooks(h ProfileHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		profileHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Profile returns the registered profile hooks.
func Profile() ProfileHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return profileHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	profileHooks = NoopProfileHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
