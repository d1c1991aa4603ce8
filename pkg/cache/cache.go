// Package cache stores raw API response bodies between runs.
//
// Caching is opt-in for ghprofile: the default backend is [NullCache], which
// keeps every profile build a fresh pass over the API. Enabling a backend
// trades freshness for fewer requests when profiling the same user again.
//
// Backends:
//   - [NullCache]: no-op, never stores anything
//   - [FileCache]: one JSON file per entry under ~/.cache/ghprofile/
//   - [RedisCache]: shared cache for several machines or CI jobs
//
// Keys are derived from the resolved request URL with [HTTPKey]. Use [Scoped]
// to keep entries fetched with different credentials apart.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// TTLHTTP is the default lifetime of a cached response.
const TTLHTTP = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the stored data and true on a hit, or nil and false on a miss.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	// Clear removes every entry and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// HTTPKey returns the cache key for a GET of url.
// raw distinguishes HTML bodies from decoded JSON fetches of the same URL.
func HTTPKey(url string, raw bool) string {
	kind := "json"
	if raw {
		kind = "raw"
	}
	return "http:" + kind + ":" + Hash([]byte(url))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// scopedCache prefixes every key before delegating.
type scopedCache struct {
	inner  Cache
	prefix string
}

// Scoped returns a view of c that prepends prefix to every key.
// Closing the view closes c.
func Scoped(c Cache, prefix string) Cache {
	if prefix == "" {
		return c
	}
	return &scopedCache{inner: c, prefix: prefix}
}

func (s *scopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scopedCache) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scopedCache) Close() error { return s.inner.Close() }

// NullCache never stores anything. It is the default backend: every build
// talks to the API.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

// Get always misses.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

// Clear reports zero removed entries.
func (NullCache) Clear(context.Context) (int, error) { return 0, nil }

var (
	_ Cache   = NullCache{}
	_ Clearer = NullCache{}
)
