package lib

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCache_GetSet(t *testing.T) {
	logger := zerolog.Nop()
	cache := NewCache[string](time.Minute, &logger)

	now := time.Unix(1_700_000_000, 0)
	cache.now = func() time.Time { return now }

	if _, ok := cache.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	cache.Set("key", "value")
	if v, ok := cache.Get("key"); !ok || v != "value" {
		t.Fatalf("Get() = %q, %v, want %q, true", v, ok, "value")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("key"); ok {
		t.Error("expected entry to expire after ttl")
	}
}

func TestCache_Disabled(t *testing.T) {
	logger := zerolog.Nop()
	cache := NewCache[int](0, &logger)

	cache.Set("key", 1)
	if _, ok := cache.Get("key"); ok {
		t.Error("disabled cache must never hit")
	}
}

func TestCache_EvictsExpiredOnSet(t *testing.T) {
	logger := zerolog.Nop()
	cache := NewCache[int](time.Second, &logger)

	now := time.Unix(1_700_000_000, 0)
	cache.now = func() time.Time { return now }

	cache.Set("a", 1)
	now = now.Add(time.Hour)
	cache.Set("b", 2)

	if len(cache.entries) != 1 {
		t.Errorf("expected expired entry to be evicted, got %d entries", len(cache.entries))
	}
}

func TestHashParams(t *testing.T) {
	if HashParams("a", "b") == HashParams("a", "c") {
		t.Error("expected different hashes for different params")
	}
	if HashParams("a", "b") != HashParams("a", "b") {
		t.Error("expected stable hash")
	}
}
