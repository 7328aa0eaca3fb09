package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

func TestCatalogCacheWithoutRedis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewCatalogCache(nil, time.Minute)

	if err := c.Set(ctx, []models.Service{{ID: 1, Name: "Uñas"}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := c.Get(ctx); ok {
		t.Fatalf("cache without redis must always miss")
	}
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	var nilCache *CatalogCache
	if _, ok := nilCache.Get(ctx); ok {
		t.Fatalf("nil cache must miss")
	}
}

func TestFixedWindowLimiter(t *testing.T) {
	t.Parallel()

	l := NewFixedWindowLimiter(nil, 5, time.Minute)
	if l.Enabled() {
		t.Fatalf("limiter without redis must be disabled")
	}

	ok, _, err := l.Allow(context.Background(), "reservar", "10.0.0.1")
	if err != nil || !ok {
		t.Fatalf("disabled limiter must allow, got ok=%v err=%v", ok, err)
	}

	now := time.Date(2025, 3, 10, 10, 0, 30, 0, time.UTC)
	a := l.Key("reservar", "10.0.0.1", now)
	b := l.Key("reservar", "10.0.0.1", now.Add(20*time.Second))
	c := l.Key("reservar", "10.0.0.1", now.Add(40*time.Second))

	if a != b {
		t.Fatalf("same window must share a key: %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("next window must use a new key")
	}
	if !strings.HasPrefix(a, "salon:ratelimit:reservar:10.0.0.1:") {
		t.Fatalf("unexpected key %s", a)
	}
}
