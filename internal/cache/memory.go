package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds model responses in process memory. Entries expire
// one by one; hits and misses are counted for the run summary.
type MemoryCache struct {
	responses *gocache.Cache
	hits      atomic.Int64
	misses    atomic.Int64
}

// NewMemoryCache creates a memory cache whose entries live for
// defaultTTL unless Set names another expiry
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		responses: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the stored response for key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.responses.Get(key)
	data, ok := val.([]byte)
	if !found || !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return data, true
}

// Set stores a copy of value. A zero ttl keeps the default expiry.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.responses.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// Delete removes a stored response
func (c *MemoryCache) Delete(key string) error {
	c.responses.Delete(key)
	return nil
}

// Clear drops every response and resets the counters
func (c *MemoryCache) Clear() error {
	c.responses.Flush()
	c.hits.Store(0)
	c.misses.Store(0)
	return nil
}

// Stats reports lookups served and missed since the last Clear
func (c *MemoryCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.responses.ItemCount(),
	}
}
