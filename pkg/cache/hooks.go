package cache

import (
	"context"
	"time"

	"github.com/matzehuels/orbital/pkg/observability"
)

type hooked struct {
	inner Cache
}

// WithHooks reports hits, misses and writes of c to the registered
// observability cache hooks, labelled by [KeyType].
func WithHooks(c Cache) Cache {
	if _, ok := c.(hooked); ok {
		return c
	}
	return hooked{inner: c}
}

func (h hooked) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := h.inner.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, KeyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, KeyType(key))
		}
	}
	return data, ok, err
}

func (h hooked) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := h.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, KeyType(key), len(data))
	return nil
}

func (h hooked) Delete(ctx context.Context, key string) error {
	return h.inner.Delete(ctx, key)
}

func (h hooked) Close() error {
	return h.inner.Close()
}

type capped struct {
	inner Cache
	max   time.Duration
}

// WithMaxTTL clamps every write to at most max. Zero TTLs (no expiry) are
// clamped too. A non-positive max returns c unchanged.
func WithMaxTTL(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return capped{inner: c, max: max}
}

func (c capped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, key)
}

func (c capped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.max {
		ttl = c.max
	}
	return c.inner.Set(ctx, key, data, ttl)
}

func (c capped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c capped) Close() error {
	return c.inner.Close()
}
