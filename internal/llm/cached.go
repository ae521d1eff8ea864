package llm

import (
	"context"
	"time"

	"github.com/ppiankov/maarifplan/internal/cache"
	"github.com/ppiankov/maarifplan/internal/logger"
)

// CachedGenerator stores model responses keyed by provider, model,
// mode and prompt. Failed generations are never cached.
type CachedGenerator struct {
	next     Generator
	cache    cache.Cache
	provider string
	model    string
	ttl      time.Duration
	log      *logger.Logger
}

// NewCachedGenerator decorates next with c
func NewCachedGenerator(next Generator, c cache.Cache, provider, model string, ttl time.Duration, log *logger.Logger) *CachedGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedGenerator{
		next:     next,
		cache:    c,
		provider: provider,
		model:    model,
		ttl:      ttl,
		log:      log,
	}
}

// Generate returns a cached response when one exists
func (g *CachedGenerator) Generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	key := cache.ResponseKey(g.provider, g.model, jsonMode, prompt)
	if data, layer, ok := g.lookup(key); ok {
		g.log.Debug("cache hit", "key", key, "layer", layer)
		return string(data), nil
	}

	text, err := g.next.Generate(ctx, prompt, jsonMode)
	if err != nil {
		return "", err
	}

	if err := g.cache.Set(key, []byte(text), g.ttl); err != nil {
		g.log.Warn("cache write failed", "key", key, "error", err)
	}
	return text, nil
}

// layeredLookup is implemented by caches that report which tier hit
type layeredLookup interface {
	Lookup(key string) ([]byte, cache.Layer, bool)
}

func (g *CachedGenerator) lookup(key string) ([]byte, cache.Layer, bool) {
	if l, ok := g.cache.(layeredLookup); ok {
		return l.Lookup(key)
	}
	data, ok := g.cache.Get(key)
	return data, cache.LayerMemory, ok
}
