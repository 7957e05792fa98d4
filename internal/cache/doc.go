// Package cache provides a generic, soft-limit LRU cache.
//
// Cache[K, V] is a thread-safe map keyed by a comparable type, bounded by a
// soft entry limit. When the limit is exceeded, entries are evicted, oldest
// access tick first, until three quarters of the limit remain.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it embeds a mutex).
package cache
