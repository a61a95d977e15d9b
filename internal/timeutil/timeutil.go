package timeutil

import (
	"sync"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateCache memoizes the "today" date string so schedule lookups within one
// polling burst share a single derivation. A stale value at most delays game
// rediscovery by the TTL.
type DateCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	value   string
	expires time.Time
}

// NewDateCache creates a date cache with the given TTL.
func NewDateCache(ttl time.Duration) *DateCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DateCache{ttl: ttl, now: time.Now}
}

// Today returns the cached date string, rederiving it after the TTL lapses.
func (c *DateCache) Today() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.value != "" && now.Before(c.expires) {
		return c.value
	}
	c.value = FormatDate(now.UTC())
	c.expires = now.Add(c.ttl)
	return c.value
}
