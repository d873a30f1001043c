/*
Package iconcache maps tileset icons to backend images so that each icon is
converted at most once.

Entries are never updated. The palette in effect when an icon is first drawn
is baked into its image, so after a palette change the cache must be Reset
by the caller if the new colours should be used.
*/
package iconcache

import (
	"sync"

	"github.com/bodgit/wwgfx/backend"
	"github.com/bodgit/wwgfx/tileset"
)

// Key identifies an icon within a particular tileset.
type Key struct {
	Tileset *tileset.Tileset
	Icon    int
}

type entry struct {
	image  backend.Image
	width  int
	height int
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	creator backend.Creator
	entries map[Key]entry
}

// New returns an empty cache that creates images with c.
func New(c backend.Creator) *Cache {
	return &Cache{
		creator: c,
		entries: make(map[Key]entry),
	}
}

// GetOrCreate returns the image for k, converting w by h pixels from pix if
// it does not exist yet. pix is not read when the image already exists.
func (c *Cache) GetOrCreate(k Key, w, h int, pix []byte, name string) backend.Image {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[k]; ok {
		return e.image
	}

	m := c.creator.CreateImageFromIndexedPixels(name, w, h, pix)
	c.entries[k] = entry{
		image:  m,
		width:  w,
		height: h,
	}

	return m
}

// Size returns the dimensions of the cached image for k.
func (c *Cache) Size(k Key) (int, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	return e.width, e.height, ok
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]entry)
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
