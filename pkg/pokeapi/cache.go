package pokeapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a read-through store of decoded responses keyed by request URL.
// Entries live as long as the cache: nothing is evicted or invalidated,
// which is fine for a read-only upstream and a short-lived process.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]any
	inflight singleflight.Group
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Load returns the entry for key, calling load on a miss. Concurrent misses
// for the same key share a single load. The load is not cancelled with the
// caller that started it; each caller stops waiting when its own ctx is done.
// Failed loads are not stored. hit is false only for the caller whose load
// went to the upstream.
func (c *Cache) Load(ctx context.Context, key string, load func(ctx context.Context) (any, error)) (v any, hit bool, err error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	loaded := false
	ch := c.inflight.DoChan(key, func() (any, error) {
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		loaded = true
		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, !loaded, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// cacheKey drops a trailing slash from the path, so /evolution-chain/10 and
// /evolution-chain/10/ share one entry.
func cacheKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = strings.TrimSuffix(u.RawPath, "/")
	return u.String()
}

// fetchJSON is the typed entry point every client accessor goes through.
func fetchJSON[T any](ctx context.Context, c *Client, rawURL string) (*T, error) {
	v, hit, err := c.cache.Load(ctx, cacheKey(rawURL), func(ctx context.Context) (any, error) {
		var out T
		if err := c.get(ctx, rawURL, &out); err != nil {
			return nil, err
		}
		if err := validate.Struct(&out); err != nil {
			return nil, &ParseError{URL: rawURL, Err: err}
		}
		return &out, nil
	})
	if hit {
		c.metrics.CacheHit()
	} else {
		c.metrics.CacheMiss()
	}
	if err != nil {
		return nil, err
	}

	typed, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("cache entry for %s has type %T", rawURL, v)
	}
	return typed, nil
}
