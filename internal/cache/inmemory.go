package cache

import (
	"context"
	"strings"
	"time"

	goCache "github.com/patrickmn/go-cache"
)

const (
	// Entries without an explicit TTL fall back to this.
	defaultExpiration = 5 * time.Minute
	// Sweep interval for expired entries.
	cleanupInterval = 30 * time.Minute
)

// InMemoryCache backs the Cache interface with patrickmn/go-cache. It is
// process-local; reference data is small and rebuilt cheaply, so no shared
// cache tier is needed.
type InMemoryCache struct {
	store *goCache.Cache
}

func NewInMemoryCache() Cache {
	return &InMemoryCache{store: goCache.New(defaultExpiration, cleanupInterval)}
}

func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	c.store.Set(key, value, expiration)
}

func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.store.Delete(key)
}

// DeleteByPrefix drops every entry under a key prefix. Used on reference
// data writes to invalidate the cached dropdown lists.
func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
		}
	}
}

func (c *InMemoryCache) Flush(_ context.Context) {
	c.store.Flush()
}
