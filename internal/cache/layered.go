package cache

import (
	"fmt"
	"time"
)

// Layer names the tier that answered a lookup
type Layer string

const (
	LayerMemory Layer = "memory"
	LayerDisk   Layer = "disk"
)

// LayeredCache keeps responses in memory for the current run and on
// disk across runs
type LayeredCache struct {
	memory *MemoryCache
	disk   *DiskCache
}

// NewLayeredCache creates a memory cache in front of a disk cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Lookup returns the response for key and the tier that held it. Disk
// hits are copied into memory with the memory default expiry.
func (c *LayeredCache) Lookup(key string) ([]byte, Layer, bool) {
	if val, found := c.memory.Get(key); found {
		return val, LayerMemory, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, LayerDisk, true
	}

	return nil, "", false
}

// Get returns the response for key from either tier
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	val, _, found := c.Lookup(key)
	return val, found
}

// Set stores a response in both tiers. The memory copy survives a
// failed disk write.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	_ = c.memory.Set(key, value, ttl)
	if err := c.disk.Set(key, value, ttl); err != nil {
		return fmt.Errorf("persist response: %w", err)
	}
	return nil
}

// Delete removes a response from both tiers
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear removes every response from both tiers
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}

// Stats reports the memory tier counters. A disk hit counts as a
// memory miss followed by a promotion.
func (c *LayeredCache) Stats() Stats {
	return c.memory.Stats()
}
