// Package cache wraps ristretto as a small TTL cache keyed by string.
package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Cache is an in-process cache with a default TTL. Writes are applied
// before Set returns, so a Get right after a Set sees the value.
type Cache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// New creates a cache holding at most maxItems entries of cost 1.
func New(maxItems int64, ttl time.Duration) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxItems * 10,
		MaxCost:            maxItems,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: cannot create ristretto cache: %w", err)
	}
	return &Cache{cache: c, ttl: ttl}, nil
}

// Set stores value with the default TTL.
func (c *Cache) Set(key string, value any) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value for ttl. It reports false when ristretto dropped
// the write.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	ok := c.cache.SetWithTTL(key, value, 1, ttl)
	c.cache.Wait()
	return ok
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Has reports whether key is cached.
func (c *Cache) Has(key string) bool {
	_, ok := c.cache.Get(key)
	return ok
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	c.cache.Del(key)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.cache.Clear()
}

// Close stops the cache's background goroutines.
func (c *Cache) Close() {
	c.cache.Close()
}
