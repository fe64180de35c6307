package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds resolved source text in process memory. It is the hot
// layer: cheap to hit, gone on restart.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a memory cache with the given default TTL and
// expired-entry sweep interval
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, false
	}
	return data, true
}

// Set stores a value. A zero ttl means the cache default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.store.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.store.Flush()
	return nil
}
