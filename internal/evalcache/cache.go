// Package evalcache is the keyed memo of evaluated gene configurations
//, backed by github.com/patrickmn/go-cache.
package evalcache

import (
	"sync"

	"github.com/patrickmn/go-cache"

	"evacsim/internal/genotype"
)

// Entry is the cached evaluation result for one gene.
type Entry struct {
	NumDoors   int
	Iterations float64
	Distance   float64
}

// Cache maps a gene's canonical boolean-tuple key to its Entry. It never
// expires entries on its own — the only eviction path is Flush, triggered
// when the enclosing instance hash changes.
//
// Concurrent misses on the same key are coalesced: only the first caller
// to miss on a given key runs compute(); every other caller for that key
// blocks on the same in-flight result instead of re-running Simulator.
type Cache struct {
	store *cache.Cache

	mu       sync.Mutex
	hash     string
	inflight map[string]*call
}

type call struct {
	done  chan struct{}
	entry Entry
	err   error
}

// New constructs an empty Cache with no expiration policy — entries live
// until Flush is called.
func New() *Cache {
	return &Cache{
		store:    cache.New(cache.NoExpiration, cache.NoExpiration),
		inflight: make(map[string]*call),
	}
}

// Key renders gene as its canonical cache key: one ASCII digit per bit,
// most-significant (index 0) first.
func Key(gene genotype.Gene) string {
	b := make([]byte, len(gene))
	for i, bit := range gene {
		if bit {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// EnsureInstance flushes the cache if hash differs from the hash recorded
// on the previous call, and records hash as current.
func (c *Cache) EnsureInstance(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hash == hash {
		return
	}
	if c.hash != "" {
		c.store.Flush()
	}
	c.hash = hash
}

// Get returns the cached Entry for gene, if present.
func (c *Cache) Get(gene genotype.Gene) (Entry, bool) {
	v, ok := c.store.Get(Key(gene))
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Set stores entry for gene, with no expiration.
func (c *Cache) Set(gene genotype.Gene, entry Entry) {
	c.store.Set(Key(gene), entry, cache.NoExpiration)
}

// GetOrCompute returns the cached Entry for gene if present; otherwise it
// runs compute exactly once per key, even under concurrent callers for
// the same gene, caches the result, and returns it.
func (c *Cache) GetOrCompute(gene genotype.Gene, compute func() (Entry, error)) (Entry, error) {
	if entry, ok := c.Get(gene); ok {
		return entry, nil
	}

	key := Key(gene)
	c.mu.Lock()
	// A concurrent caller may have finished computing this key between the
	// lookup above and taking the lock.
	if entry, ok := c.Get(gene); ok {
		c.mu.Unlock()
		return entry, nil
	}
	if existing, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		<-existing.done
		return existing.entry, existing.err
	}
	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	cl.entry, cl.err = compute()
	if cl.err == nil {
		c.Set(gene, cl.entry)
	}
	close(cl.done)

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	return cl.entry, cl.err
}

// ItemCount reports the number of cached entries; Factory.CacheSize
// exposes it.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// parseKey is the inverse of Key, exposed for diagnostics/tests.
func parseKey(key string) genotype.Gene {
	g := make(genotype.Gene, len(key))
	for i := 0; i < len(key); i++ {
		g[i] = key[i] == '1'
	}
	return g
}
