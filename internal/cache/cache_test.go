package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New()
	defer c.Close()

	c.Set("k", "v", time.Minute)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != "v" {
		t.Fatalf("got %v, want v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New()
	defer c.Close()

	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("k", 42, 10*time.Second)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit before expiry")
	}

	c.now = func() time.Time { return base.Add(11 * time.Second) }

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after expiry")
	}
}

func TestCacheEvict(t *testing.T) {
	c := New()
	defer c.Close()

	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("a", 1, 5*time.Second)
	c.Set("b", 2, time.Hour)

	c.now = func() time.Time { return base.Add(time.Minute) }
	c.evict()

	if got := c.Len(); got != 1 {
		t.Fatalf("got %d entries, want 1", got)
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("long-lived entry should survive eviction")
	}
}

func TestCacheZeroTTLIgnored(t *testing.T) {
	c := New()
	defer c.Close()

	c.Set("k", "v", 0)

	if _, ok := c.Get("k"); ok {
		t.Fatal("zero-ttl entry should not be stored")
	}
}
