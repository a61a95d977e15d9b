// Package cache provides a thread-safe in-memory TTL cache for decoded
// upstream responses.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache. A zero-value Cache is not
// usable; construct one with New.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	done    chan struct{}
	once    sync.Once

	now func() time.Time
}

// New creates a cache and starts a background eviction loop. Callers should
// Close the cache when done to stop the loop.
func New() *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go c.evictLoop()
	return c
}

// Get retrieves a cached value. Expired entries are treated as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value with a TTL. Non-positive TTLs are ignored.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

// Delete removes a key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of unexpired entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	now := c.now()
	n := 0
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// Close stops the background eviction loop. Safe to call more than once.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evict()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
