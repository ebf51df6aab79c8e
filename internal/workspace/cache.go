package workspace

import (
	"context"
	"fmt"
	"sync"
)

// Cache holds the last loaded Snapshot. Loads may overlap when the palette
// is reopened quickly; a load that started earlier never replaces the
// result of one that started later.
type Cache struct {
	store Store

	mu      sync.Mutex
	started uint64
	applied uint64
	snap    Snapshot
	loaded  bool
}

// NewCache returns an empty cache over store.
func NewCache(store Store) *Cache {
	return &Cache{store: store}
}

// Load fetches a fresh snapshot. When force is false and a snapshot is
// already cached, Load returns immediately.
func (c *Cache) Load(ctx context.Context, force bool) error {
	c.mu.Lock()
	if c.loaded && !force {
		c.mu.Unlock()
		return nil
	}
	c.started++
	gen := c.started
	c.mu.Unlock()

	snap, err := c.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load palette data: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < c.applied {
		return nil
	}
	c.applied = gen
	c.snap = snap
	c.loaded = true
	return nil
}

// Invalidate marks the cache stale so the next Load refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}

// Snapshot returns the cached snapshot and whether one was loaded.
func (c *Cache) Snapshot() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap, c.loaded
}
