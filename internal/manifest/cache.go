package manifest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/models"
	"golang.org/x/sync/singleflight"
)

// JSONFetcher is the slice of service.Fetcher the cache needs.
type JSONFetcher interface {
	GetJSON(ctx context.Context, url string, v any) error
}

// Cache holds the version manifest for the lifetime of the process.
// It is populated lazily by the first Get and never refreshed afterwards.
// Concurrent first callers share a single upstream fetch; a failed fetch
// leaves the cache empty so the next caller tries again.
type Cache struct {
	url     string
	fetcher JSONFetcher

	mu      sync.RWMutex
	entries []models.ManifestEntry
	index   map[string]int
	loaded  bool

	group singleflight.Group
}

func New(url string, fetcher JSONFetcher) *Cache {
	return &Cache{url: url, fetcher: fetcher}
}

// Get returns the manifest entries in upstream order.
func (c *Cache) Get(ctx context.Context) ([]models.ManifestEntry, error) {
	if entries, ok := c.snapshot(); ok {
		return entries, nil
	}

	// The shared fetch must not die with whichever caller happened to start it.
	shared := context.WithoutCancel(ctx)

	_, err, _ := c.group.Do("manifest", func() (interface{}, error) {
		if _, ok := c.snapshot(); ok {
			return nil, nil
		}
		return nil, c.populate(shared)
	})
	if err != nil {
		return nil, err
	}

	entries, _ := c.snapshot()
	return entries, nil
}

// Lookup finds an entry by id, populating the cache if needed.
func (c *Cache) Lookup(ctx context.Context, id string) (models.ManifestEntry, bool, error) {
	if _, err := c.Get(ctx); err != nil {
		return models.ManifestEntry{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return models.ManifestEntry{}, false, nil
	}
	return c.entries[i], true, nil
}

// IDs returns every version id in upstream order.
func (c *Cache) IDs(ctx context.Context) ([]string, error) {
	entries, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids, nil
}

// Loaded reports whether the manifest has been fetched.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *Cache) populate(ctx context.Context) error {
	start := time.Now()
	logger.Debug("fetching version manifest from %s", c.url)

	var doc models.Manifest
	if err := c.fetcher.GetJSON(ctx, c.url, &doc); err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	index := make(map[string]int, len(doc.Versions))
	for i, e := range doc.Versions {
		// first occurrence wins on duplicate ids
		if _, dup := index[e.ID]; !dup {
			index[e.ID] = i
		}
	}

	entries := doc.Versions
	if entries == nil {
		entries = []models.ManifestEntry{}
	}

	c.mu.Lock()
	c.entries = entries
	c.index = index
	c.loaded = true
	c.mu.Unlock()

	logger.Debug("manifest cached in %s (%d versions)", time.Since(start).Truncate(time.Millisecond), len(entries))
	return nil
}

// snapshot returns a copy so callers cannot mutate the cached slice.
func (c *Cache) snapshot() ([]models.ManifestEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, false
	}
	out := make([]models.ManifestEntry, len(c.entries))
	copy(out, c.entries)
	return out, true
}
