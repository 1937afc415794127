package gateway

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/openfoodshare/foodgate/pkg/tabular"
)

type entry struct {
	table     *tabular.Table
	expiresAt time.Time
}

// Cache memoizes read results keyed by the exact (query text, parameter
// tuple) pair. Entries expire lazily after the TTL; writes never invalidate
// them, so staleness up to the TTL is accepted.
type Cache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	hits      int64
	misses    int64
	evictions int64
}

// CacheStats tracks cache effectiveness counters.
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Entries   int   `json:"entries"`
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// cacheKey fingerprints the query text and parameter tuple.
func cacheKey(query string, params []any) string {
	payload, err := json.Marshal(struct {
		Query  string `json:"q"`
		Params []any  `json:"p"`
	}{query, params})
	if err != nil {
		payload = []byte(fmt.Sprintf("%s|%v", query, params))
	}
	return fmt.Sprintf("%x", sha256.Sum256(payload))
}

// Get returns a copy of the cached table for the key, if present and not
// expired. Expired entries are evicted on access.
func (c *Cache) Get(query string, params []any) (*tabular.Table, bool) {
	key := cacheKey(query, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		c.evictions++
		c.misses++
		return nil, false
	}

	c.hits++
	return e.table.Clone(), true
}

// Put stores a copy of the table, replacing any previous entry for the key.
func (c *Cache) Put(query string, params []any, t *tabular.Table) {
	key := cacheKey(query, params)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		table:     t.Clone(),
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Entries:   len(c.entries),
	}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}
