package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultTTL matches the upstream catalog refresh window.
const DefaultTTL = 10 * time.Minute

// CatalogCache keeps pipeline/stage snapshots per instance. It is an
// optimization only: a miss (or a fresh cache after instance recycling) is
// always resolvable by re-fetching from Kommo.
type CatalogCache struct {
	cache *cache.Cache
}

func NewCatalogCache() *CatalogCache {
	// Expired items are also purged in the background every 10 minutes
	c := cache.New(DefaultTTL, 10*time.Minute)
	return &CatalogCache{
		cache: c,
	}
}

func (r *CatalogCache) Get(key string) (interface{}, bool) {
	return r.cache.Get(key)
}

func (r *CatalogCache) Set(key string, value interface{}, ttl time.Duration) {
	r.cache.Set(key, value, ttl)
}
