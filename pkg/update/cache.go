package update

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"
	"sync"

	"github.com/goliatone/go-svgform/pkg/schema"
)

// Cache memoizes Apply results. Keys digest the document text and the update
// set; schemas are a pure function of the document text, so the pair fully
// identifies the result. Entries are cloned on the way in and out, so cached
// schemas are never shared with callers.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	svg    string
	schema schema.Schema
}

// NewCache returns an empty cache safe for concurrent use.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Len reports the number of memoized results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every memoized result.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *Cache) get(key string) (string, schema.Schema, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", nil, false
	}
	return entry.svg, entry.schema.Clone(), true
}

func (c *Cache) put(key, svg string, s schema.Schema) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{svg: svg, schema: s.Clone()}
	c.mu.Unlock()
}

// cacheKey digests the document and a canonical ordering of the updates.
// Boolean and text payloads hash distinctly because they mutate differently.
func cacheKey(svgText string, updates map[string]schema.Value) string {
	h := sha256.New()
	io.WriteString(h, svgText)

	ids := make([]string, 0, len(updates))
	for id := range updates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		value := updates[id]
		io.WriteString(h, "\x00")
		io.WriteString(h, id)
		if value.IsBool() {
			io.WriteString(h, "\x01b")
		} else {
			io.WriteString(h, "\x01s")
		}
		io.WriteString(h, value.String())
	}
	return hex.EncodeToString(h.Sum(nil))
}
