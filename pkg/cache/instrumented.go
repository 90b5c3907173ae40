package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/flamelens/pkg/observability"
)

// Instrumented wraps a Cache and reports hits, misses, writes and backend
// errors to the observability hooks. Events are labelled with the key's
// stage token (http, frame or artifact), found by scanning the key's
// colon-separated segments so scope prefixes are skipped.
type Instrumented struct {
	inner Cache
}

// NewInstrumented wraps inner with hook instrumentation. A nil inner cache
// behaves like a NullCache.
func NewInstrumented(inner Cache) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Instrumented{inner: inner}
}

// Get retrieves data and reports a hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	kt := keyType(key)
	switch {
	case err != nil:
		observability.Cache().OnCacheError(ctx, kt, err)
	case hit:
		observability.Cache().OnCacheHit(ctx, kt)
	default:
		observability.Cache().OnCacheMiss(ctx, kt)
	}
	return data, hit, err
}

// Set stores data and reports the write.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err != nil {
		observability.Cache().OnCacheError(ctx, keyType(key), err)
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Delete removes an entry.
func (c *Instrumented) Delete(ctx context.Context, key string) error {
	err := c.inner.Delete(ctx, key)
	if err != nil {
		observability.Cache().OnCacheError(ctx, keyType(key), err)
	}
	return err
}

// Close closes the underlying backend.
func (c *Instrumented) Close() error {
	return c.inner.Close()
}

// keyType extracts the stage token from a cache key. Keys are colon-joined
// and may carry a scope prefix, so the first recognized segment wins.
func keyType(key string) string {
	rest := key
	for {
		i := strings.IndexByte(rest, ':')
		if i < 0 {
			return "other"
		}
		switch rest[:i] {
		case "http", "frame", "artifact":
			return rest[:i]
		}
		rest = rest[i+1:]
	}
}

// Ensure Instrumented implements Cache.
var _ Cache = (*Instrumented)(nil)
