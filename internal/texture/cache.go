package texture

import (
	"errors"
	"fmt"
	"image"
	"sync"
)

// ErrNotFound is returned when a reference matches no indexed file.
var ErrNotFound = errors.New("texture not found")

// Resolver resolves a texture reference to a decoded NRGBA image.
type Resolver interface {
	Image(ref string) (*image.NRGBA, error)
}

// Cache is a concurrency-safe texture cache. Cached images are shared
// between callers and must be treated as read-only.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error // decode failures are cached too
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Image loads and caches a texture by reference.
func (c *Cache) Image(ref string) (*image.NRGBA, error) {
	path, ok := c.index.ResolvePath(ref)
	if !ok {
		return nil, fmt.Errorf("texture: %s: %w", ref, ErrNotFound)
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
