// Package cache provides content-addressed memoization shared by the
// transformation session, the token resolver and the theme compiler.
// Entries never expire implicitly; configurations are not expected to mutate
// within a session, so staleness is controlled by the caller clearing the
// cache when inputs change.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache is a concurrency-safe memoization table. Writes are idempotent:
// re-storing the same key with the same value is harmless.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Key derives a deterministic cache key from an operation name and its
// inputs, hashing their canonical serialization.
func Key(op string, parts ...any) (string, error) {
	payload := map[string]any{"op": op, "in": append([]any(nil), parts...)}
	data, err := Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores a value under key.
func (c *Cache) Put(key string, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Clear removes every entry.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
