package cache

import "time"

// CacheService is the process-local cache for derived, read-only data: resolved categories,
// thumbnails, site content and the sitemap. Keys are namespaced "<namespace>:<rest>".
type CacheService interface {
	// Get returns the value and true on a hit
	Get(key string) (interface{}, bool)

	// Set stores a value; a zero duration uses the cache default
	Set(key string, value interface{}, duration time.Duration)

	// ItemCount reports how many entries are held, expired ones included
	ItemCount() int
}

// GetAs fetches a cached value and asserts its type in one step.
// A type mismatch is treated as a miss.
func GetAs[T any](c CacheService, key string) (T, bool) {
	var zero T
	val, found := c.Get(key)
	if !found {
		return zero, false
	}
	typed, ok := val.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
