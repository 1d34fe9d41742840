package tilecache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"golang.org/x/sync/singleflight"
)

// BuildFunc produces the tile artifact for a cache miss. It runs on the
// blocking worker pool the caller arranges; the cache itself does not
// schedule it onto a pool.
type BuildFunc func(key TileKey) (TileArtifact, error)

// Cache is a byte-weighted, LRU-evicted, single-flight tile cache. The
// underlying simplelru.LRU is count-bounded, not byte-bounded, so it is
// sized effectively unbounded and eviction is driven manually by comparing
// the running byte total against MaxBytes after every insert — the same
// "evict until under budget" idiom the teacher's internal/cog/tilecache.go
// uses for its fixed entry count, generalized to weighted entries.
type Cache struct {
	mu       sync.Mutex
	lru      *simplelru.LRU[TileKey, TileArtifact]
	maxBytes int64
	curBytes int64

	group singleflight.Group
	stats *Stats
}

// New creates a Cache with the given maximum byte budget. maxBytes <= 0
// falls back to DefaultMaxBytes.
func New(maxBytes int64) *Cache {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	c := &Cache{maxBytes: maxBytes, stats: newStats()}
	lru, _ := simplelru.NewLRU[TileKey, TileArtifact](1<<31-1, c.onEvict)
	c.lru = lru
	return c
}

func (c *Cache) onEvict(_ TileKey, value TileArtifact) {
	c.curBytes -= value.weight()
}

// GetOrBuild probes the cache for key; on hit it returns the cached
// artifact and records cache_hits. On miss it records cache_misses and
// invokes build, guaranteeing at-most-one concurrent build per key: every
// caller racing on the same missing key observes the single computed
// result (spec.md §4.7's single-flight guarantee, testable property 6).
func (c *Cache) GetOrBuild(key TileKey, build BuildFunc) (TileArtifact, error) {
	c.mu.Lock()
	if artifact, ok := c.lru.Get(key); ok {
		c.mu.Unlock()
		c.stats.recordHit()
		return artifact, nil
	}
	c.mu.Unlock()

	c.stats.recordMiss()

	start := time.Now()
	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		// A flight that finished between the probe above and this call has
		// already inserted the artifact; reuse it instead of rebuilding.
		c.mu.Lock()
		if artifact, ok := c.lru.Get(key); ok {
			c.mu.Unlock()
			return artifact, nil
		}
		c.mu.Unlock()
		artifact, err := build(key)
		if err != nil {
			return TileArtifact{}, err
		}
		c.insert(key, artifact)
		return artifact, nil
	})
	if err != nil {
		return TileArtifact{}, err
	}
	c.stats.recordServed(time.Since(start))
	return v.(TileArtifact), nil
}

func (c *Cache) insert(key TileKey, artifact TileArtifact) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lru.Get(key); ok {
		return
	}
	c.lru.Add(key, artifact)
	c.curBytes += artifact.weight()

	for c.curBytes > c.maxBytes {
		if _, _, ok := c.lru.RemoveOldest(); !ok {
			break
		}
	}
}

// Stats returns the cache's hit/miss/throughput counters.
func (c *Cache) Stats() *Stats { return c.stats }

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// SizeBytes returns the current total byte weight of cached entries.
func (c *Cache) SizeBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.curBytes
}

// MaxBytes returns the configured byte budget.
func (c *Cache) MaxBytes() int64 { return c.maxBytes }
