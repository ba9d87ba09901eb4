// Package poolcache provides an in-memory TTL cache for assembled pool
// aggregates. The cache is process-lifetime only and has no cross-process
// representation. It is not internally synchronized; the engine owns it and
// concurrent callers must serialize above it.
package poolcache

import "time"

// Snapshotter is implemented by cached values. Clone must return a deep
// copy so that later mutation of a live aggregate is never visible through
// the cache, and vice versa.
type Snapshotter[T any] interface {
	Clone() T
}

type entry[T Snapshotter[T]] struct {
	data T
	at   time.Time
}

// Cache is a keyed TTL store. An entry is live while its age is strictly
// below the TTL; a stale entry is treated as absent on read but stays in
// the map until Sweep removes it.
type Cache[T Snapshotter[T]] struct {
	ttl     time.Duration
	entries map[string]entry[T]

	// now is swappable for deterministic expiry tests
	now func() time.Time
}

// New creates a cache with the given TTL
func New[T Snapshotter[T]](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
		now:     time.Now,
	}
}

// Get returns a snapshot of the live entry under key, if any. Stale entries
// are not evicted here, only reported absent.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.at) >= c.ttl {
		return zero, false
	}
	return e.data.Clone(), true
}

// Put stores a snapshot of value under key unconditionally, stamping the
// current time.
func (c *Cache[T]) Put(key string, value T) {
	c.entries[key] = entry[T]{data: value.Clone(), at: c.now()}
}

// Sweep removes every entry whose age has reached the TTL and reports how
// many were removed. It is never invoked implicitly by Get or Put.
func (c *Cache[T]) Sweep() int {
	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.at) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Stats reports the total number of entries and how many of them are
// expired but not yet swept.
func (c *Cache[T]) Stats() (total, expired int) {
	now := c.now()
	total = len(c.entries)
	for _, e := range c.entries {
		if now.Sub(e.at) >= c.ttl {
			expired++
		}
	}
	return total, expired
}
