package artwork

import (
	"errors"
	"sync"
)

const DefaultCacheSize = 64

var ErrCacheMiss = errors.New("cache miss")

type cacheEntry struct {
	sleeve   *Sleeve
	lastUsed uint64
}

// Cache keeps decoded sleeves in memory for the lifetime of the process.
// When full, the least recently used entry makes room.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	size    int
	clock   uint64
}

func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		entries: make(map[string]*cacheEntry),
		size:    size,
	}
}

func (c *Cache) Get(url string) (*Sleeve, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[url]
	if !ok {
		return nil, ErrCacheMiss
	}
	c.clock++
	entry.lastUsed = c.clock
	return entry.sleeve, nil
}

func (c *Cache) Set(url string, sleeve *Sleeve) {
	if url == "" || sleeve == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[url]; !exists && len(c.entries) >= c.size {
		c.evictLocked()
	}
	c.clock++
	c.entries[url] = &cacheEntry{sleeve: sleeve, lastUsed: c.clock}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *Cache) evictLocked() {
	var (
		oldestKey string
		oldest    uint64
	)
	for key, entry := range c.entries {
		if oldestKey == "" || entry.lastUsed < oldest {
			oldestKey = key
			oldest = entry.lastUsed
		}
	}
	delete(c.entries, oldestKey)
}
