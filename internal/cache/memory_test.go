package cache

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryExpiresAtInstant(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemoryWithClock[string](0, clock.now)

	m.Set("weather_Paris_metric", "sunny", 15*time.Minute)

	clock.advance(15*time.Minute - time.Nanosecond)
	if v, ok := m.Get("weather_Paris_metric"); !ok || v != "sunny" {
		t.Fatalf("expected live entry, got %q ok=%v", v, ok)
	}

	// Exactly at expiry the entry is no longer served.
	clock.advance(time.Nanosecond)
	if _, ok := m.Get("weather_Paris_metric"); ok {
		t.Fatal("expected entry to be expired at its expiry instant")
	}

	// Expired entries are not evicted on read.
	if m.Len() != 1 {
		t.Fatalf("expected expired entry to remain stored, len=%d", m.Len())
	}
}

func TestMemorySetReplacesEntry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := NewMemoryWithClock[int](time.Minute, clock.now)

	m.Set("k", 1, 0)
	clock.advance(2 * time.Minute)
	if _, ok := m.Get("k"); ok {
		t.Fatal("expected default ttl to expire the entry")
	}

	m.Set("k", 2, time.Hour)
	if v, ok := m.Get("k"); !ok || v != 2 {
		t.Fatalf("expected refreshed value 2, got %d ok=%v", v, ok)
	}
	if m.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", m.Len())
	}
}

func TestMemoryNoExpiryWithoutTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := NewMemoryWithClock[int](0, clock.now)

	m.Set("k", 7, 0)
	clock.advance(1000 * time.Hour)
	if v, ok := m.Get("k"); !ok || v != 7 {
		t.Fatalf("expected entry without expiry, got %d ok=%v", v, ok)
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory[string](time.Hour)
	m.Set("a", "1", 0)
	m.Set("b", "2", 0)

	m.Clear()

	if m.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", m.Len())
	}
	if _, ok := m.Get("a"); ok {
		t.Fatal("expected miss after clear")
	}
	if !m.Healthy() {
		t.Fatal("expected cache to stay healthy after clear")
	}
}

func TestMemoryClearPattern(t *testing.T) {
	m := NewMemory[string](time.Hour)
	m.Set("weather_Paris_metric", "1", 0)
	m.Set("weather_Rome_imperial", "2", 0)
	m.Set("forecast_Paris_metric", "3", 0)

	removed, err := m.ClearPattern("weather_*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, ok := m.Get("forecast_Paris_metric"); !ok {
		t.Fatal("expected forecast entry to survive")
	}

	removed, err = m.ClearPattern("*")
	if err != nil || removed != 1 || m.Len() != 0 {
		t.Fatalf("expected wildcard clear of 1 entry, got removed=%d err=%v len=%d", removed, err, m.Len())
	}

	if _, err := m.ClearPattern("[unterminated"); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}
