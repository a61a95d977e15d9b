package timeutil

import (
	"testing"
	"time"
)

func TestFormatAndParseDateRoundTrip(t *testing.T) {
	day := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	formatted := FormatDate(day)
	if formatted != "2025-08-18" {
		t.Fatalf("expected 2025-08-18, got %s", formatted)
	}
	parsed, err := ParseDate(formatted)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !parsed.Equal(day) {
		t.Fatalf("round trip mismatch: %s", parsed)
	}
}

func TestDateCacheServesCachedValueWithinTTL(t *testing.T) {
	current := time.Date(2025, 8, 18, 23, 30, 0, 0, time.UTC)
	c := NewDateCache(time.Hour)
	c.now = func() time.Time { return current }

	if got := c.Today(); got != "2025-08-18" {
		t.Fatalf("expected 2025-08-18, got %s", got)
	}

	// Midnight rolls over but the TTL has not lapsed; the cached string wins.
	current = current.Add(45 * time.Minute)
	if got := c.Today(); got != "2025-08-18" {
		t.Fatalf("expected cached value, got %s", got)
	}

	// Past the TTL the new day is derived.
	current = current.Add(time.Hour)
	if got := c.Today(); got != "2025-08-19" {
		t.Fatalf("expected rederived value, got %s", got)
	}
}
