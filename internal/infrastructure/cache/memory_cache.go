package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// MemoryCache is a map-backed CacheRepository. It is used when the SQLite
// database cannot be opened, so a broken cache directory degrades service
// quality instead of failing startup.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]domain.CacheEntry
}

// NewMemoryCache builds an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]domain.CacheEntry{}}
}

// Get implements ports.CacheRepository.
func (c *MemoryCache) Get(key string, now time.Time) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return domain.CacheEntry{}, false
	}
	if entry.Expired(now) {
		delete(c.entries, key)
		return domain.CacheEntry{}, false
	}
	return entry, true
}

// Set implements ports.CacheRepository.
func (c *MemoryCache) Set(entry domain.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Key] = entry
	return nil
}

// Entries returns all entries, newest first.
func (c *MemoryCache) Entries() ([]domain.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Clear implements ports.CacheRepository.
func (c *MemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]domain.CacheEntry{}
	return nil
}

// Close implements ports.CacheRepository.
func (c *MemoryCache) Close() error {
	return nil
}

var _ ports.CacheRepository = (*MemoryCache)(nil)
