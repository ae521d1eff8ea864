package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/maarifplan/internal/model"
)

// Cache defines the interface for caching model responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey hashes an arbitrary request identity into a file-safe key
func CacheKey(identity string) string {
	hash := sha256.Sum256([]byte(identity))
	return "maarifplan-v1-" + hex.EncodeToString(hash[:])
}

// ResponseKey identifies one model response by provider, model,
// response mode and prompt
func ResponseKey(provider, model string, jsonMode bool, prompt string) string {
	mode := "text"
	if jsonMode {
		mode = "json"
	}
	return CacheKey(provider + "\x00" + model + "\x00" + mode + "\x00" + prompt)
}

// Stats counts lookups against the in-process tier
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// StatsReporter is implemented by caches that count their lookups
type StatsReporter interface {
	Stats() Stats
}

// FromConfig builds the cache described by cfg, or nil when caching is off
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
