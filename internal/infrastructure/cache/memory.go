package cache

import (
	"strings"
	"time"

	"interiorhub-web/internal/infrastructure/metrics"
	"interiorhub-web/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache backs CacheService with go-cache.
// defaultExpiration applies to Set calls with a zero duration; cleanupInterval is how often
// expired entries are swept.
func NewMemoryCache(defaultExpiration, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	val, found := c.store.Get(key)
	result := "miss"
	if found {
		result = "hit"
	}
	metrics.CacheLookups.WithLabelValues(Namespace(key), result).Inc()
	return val, found
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	if duration == 0 {
		duration = gocache.DefaultExpiration
	}
	c.store.Set(key, value, duration)
}

func (c *memoryCache) ItemCount() int {
	return c.store.ItemCount()
}

// Namespace is the key prefix up to the first colon: "category:resolve:tv" -> "category".
func Namespace(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
