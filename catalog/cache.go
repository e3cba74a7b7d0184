package catalog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type cacheEntry struct {
	modTime time.Time
	size    int64
	catalog *Catalog
}

// Cache keeps the last catalog built from each file and reuses it while
// the file's modification time and size are unchanged. Safe for
// concurrent use.
type Cache struct {
	opts Options

	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewCache(opts Options) *Cache {
	return &Cache{opts: opts, entries: make(map[string]cacheEntry)}
}

// Get returns the catalog for path, rebuilding it when the file changed
// since it was last built. A failed build leaves any cached entry alone.
func (c *Cache) Get(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat vocabulary: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e.catalog, nil
	}

	cat, err := Load(path, c.opts)
	if err != nil {
		return nil, err
	}
	c.entries[path] = cacheEntry{modTime: cat.source.ModTime, size: cat.source.Size, catalog: cat}
	return cat, nil
}

// Cached returns the entry for path without touching the file system.
func (c *Cache) Cached(path string) (*Catalog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	return e.catalog, ok
}

func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
