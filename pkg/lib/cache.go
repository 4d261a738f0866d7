package lib

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type cacheEntry[V any] struct {
	value      V
	expiration time.Time
}

// Cache is an in-memory TTL cache. A zero or negative ttl disables it.
type Cache[V any] struct {
	logger  *zerolog.Logger
	entries map[string]cacheEntry[V]
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
}

func NewCache[V any](ttl time.Duration, logger *zerolog.Logger) *Cache[V] {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &Cache[V]{
		logger:  logger,
		entries: make(map[string]cacheEntry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache[V]) Enabled() bool {
	return c.ttl > 0
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if !c.Enabled() {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return zero, false
	}

	if c.now().After(entry.expiration) {
		return zero, false
	}

	c.logger.Trace().
		Str("key", key).
		Msg("cache hit")

	return entry.value, true
}

func (c *Cache[V]) Set(key string, value V) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpired()
	c.entries[key] = cacheEntry[V]{
		value:      value,
		expiration: c.now().Add(c.ttl),
	}
}

// evictExpired must be called with the write lock held.
func (c *Cache[V]) evictExpired() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiration) {
			delete(c.entries, key)
		}
	}
}

func HashParams(params ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(params, ",")))
	return fmt.Sprintf("%x", hash)
}
