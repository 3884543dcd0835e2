package attribution

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// manifest is the resolved identity for a package directory, cached so a
// hot path (the same dependency called repeatedly) only pays for one
// filesystem read per process (spec.md §4.2/§9).
type manifest struct {
	name    string
	version string
}

// defaultCacheSize bounds the manifest cache. spec.md §9 calls a
// bounded-size LRU "acceptable" for this cache even though the unbounded
// map a pure Node.js implementation would use is also acceptable (the
// cache is scoped to the number of distinct package directories a process
// touches, which is small in practice); a generous bound keeps the cache
// effectively unbounded for realistic dependency graphs while avoiding
// unbounded growth in pathological cases (e.g. a host that dynamically
// constructs many distinct vendor roots).
const defaultCacheSize = 4096

// manifestCache is a process-wide, memory-only cache keyed by absolute
// package directory.
type manifestCache struct {
	lru *lru.Cache[string, manifest]
}

func newManifestCache() *manifestCache {
	c, err := lru.New[string, manifest](defaultCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// defaultCacheSize never is.
		panic(err)
	}
	return &manifestCache{lru: c}
}

func (c *manifestCache) get(dir string) (manifest, bool) {
	return c.lru.Get(dir)
}

func (c *manifestCache) put(dir string, m manifest) {
	c.lru.Add(dir, m)
}
