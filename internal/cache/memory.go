package cache

import (
	"context"
	"sync"
	"time"

	"github.com/UnknownOlympus/odyssey/internal/models"
)

// DefaultMemoryEntries caps a MemoryCache created by NewMemoryCache.
const DefaultMemoryEntries = 10000

type memoryEntry struct {
	coords    models.Coordinates
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a process-local Cache used when Redis is not configured.
// Expired entries are dropped on read and swept at most once per ttl on write.
// When the cache is full the entry closest to expiry is evicted.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	nextSweep  time.Time
	now        func() time.Time
}

// NewMemoryCache returns an empty MemoryCache holding up to DefaultMemoryEntries addresses.
// A zero ttl keeps entries until they are evicted for space.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCacheWithLimit(ttl, DefaultMemoryEntries)
}

// NewMemoryCacheWithLimit is NewMemoryCache with an explicit capacity.
// A non-positive maxEntries falls back to DefaultMemoryEntries.
func NewMemoryCacheWithLimit(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}

	return &MemoryCache{entries: map[string]memoryEntry{}, ttl: ttl, maxEntries: maxEntries, now: time.Now}
}

// Get returns cached coordinates for address or ErrMiss.
func (c *MemoryCache) Get(_ context.Context, address string) (*models.Coordinates, error) {
	key := normalize(address)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, ErrMiss
	}
	if entry.expired(c.now()) {
		delete(c.entries, key)
		return nil, ErrMiss
	}
	coords := entry.coords

	return &coords, nil
}

// Set stores coords for address.
func (c *MemoryCache) Set(_ context.Context, address string, coords models.Coordinates) error {
	key := normalize(address)
	now := c.now()
	entry := memoryEntry{coords: coords}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl > 0 && !now.Before(c.nextSweep) {
		c.sweep(now)
		c.nextSweep = now.Add(c.ttl)
	}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxEntries {
		c.evictOne()
	}
	c.entries[key] = entry

	return nil
}

// Len reports how many entries are held, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *MemoryCache) sweep(now time.Time) {
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
}

// evictOne drops the entry expiring first; entries without expiry tie and any one may go.
func (c *MemoryCache) evictOne() {
	var victim string
	var soonest time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.expiresAt.Before(soonest) {
			victim, soonest, first = key, entry.expiresAt, false
		}
	}
	delete(c.entries, victim)
}
