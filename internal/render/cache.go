package render

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Key identifies a cached artifact: the same page requested at a different
// resolution is a different entry.
type Key struct {
	Page   int
	Width  int
	Height int
}

// String returns a stable identity for in-flight deduplication
func (k Key) String() string {
	return fmt.Sprintf("%d:%dx%d", k.Page, k.Width, k.Height)
}

// Cache memoizes rendered page artifacts. There is no eviction within a
// session: entries are bounded by page count times the handful of resolutions
// a session actually requests, and the owner clears the cache wholesale on
// layout-mode toggles, significant resizes and document replacement.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*PageArtifact
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache creates an empty artifact cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]*PageArtifact),
	}
}

// Get returns the cached artifact for the exact key, if present
func (c *Cache) Get(key Key) (*PageArtifact, bool) {
	c.mu.RLock()
	a, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return a, ok
}

// peek returns the entry without touching the hit/miss counters. The
// renderer's in-flight re-check uses it so one request counts one lookup.
func (c *Cache) peek(key Key) (*PageArtifact, bool) {
	c.mu.RLock()
	a, ok := c.entries[key]
	c.mu.RUnlock()
	return a, ok
}

// Put stores an artifact. Concurrent writes of the same key are harmless:
// the artifact is a pure function of the key, so last-write equals first-write.
func (c *Cache) Put(key Key, artifact *PageArtifact) {
	c.mu.Lock()
	c.entries[key] = artifact
	c.mu.Unlock()
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[Key]*PageArtifact)
	c.mu.Unlock()
}

// Len returns the number of cached artifacts
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cumulative hit and miss counts for the session
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
