package youtube

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	details Details
	expires time.Time
}

// CachingProvider wraps another DetailsProvider with a TTL-based in-memory cache.
type CachingProvider struct {
	base DetailsProvider
	ttl  time.Duration

	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewCachingProvider returns a DetailsProvider that caches lookups for the provided TTL.
func NewCachingProvider(base DetailsProvider, ttl time.Duration) *CachingProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachingProvider{
		base:  base,
		ttl:   ttl,
		items: make(map[string]cacheEntry),
	}
}

// Details returns cached metadata when available, otherwise it delegates to the
// underlying provider and stores the result. Lookup failures are never cached.
func (c *CachingProvider) Details(ctx context.Context, videoID string) (Details, error) {
	if c == nil || c.base == nil {
		return Details{}, ErrClientUnavailable
	}

	now := time.Now()

	c.mu.RLock()
	entry, ok := c.items[videoID]
	c.mu.RUnlock()
	if ok && now.Before(entry.expires) {
		return entry.details, nil
	}

	details, err := c.base.Details(ctx, videoID)
	if err != nil {
		return Details{}, err
	}

	c.mu.Lock()
	c.items[videoID] = cacheEntry{details: details, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return details, nil
}
