// Package cache memoizes label resolutions so repeated labels across tables
// and documents skip the fuzzy scan. The cache is an optimization only:
// resolution is pure, so a hit and a recomputation are always identical.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mkhairi/xbrlfacts/internal/model"
)

// Key derives a cache key from a normalized label
func Key(label string) string {
	hash := sha256.Sum256([]byte(label))
	return "xbrlfacts:v1:" + hex.EncodeToString(hash[:])
}

// ResolutionCache is an in-memory TTL cache of label resolutions
type ResolutionCache struct {
	cache *gocache.Cache
}

// NewResolutionCache creates a resolution cache with the given TTL
func NewResolutionCache(defaultTTL, cleanupInterval time.Duration) *ResolutionCache {
	return &ResolutionCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a memoized resolution for a normalized label
func (c *ResolutionCache) Get(label string) (model.Resolution, bool) {
	if val, found := c.cache.Get(Key(label)); found {
		return val.(model.Resolution), true
	}
	return model.Resolution{}, false
}

// Set memoizes a resolution for a normalized label
func (c *ResolutionCache) Set(label string, res model.Resolution) {
	c.cache.Set(Key(label), res, gocache.DefaultExpiration)
}

// Flush removes all memoized resolutions
func (c *ResolutionCache) Flush() {
	c.cache.Flush()
}
