// Package cache memoizes solver results keyed by query signature and graph
// version. Invalidation is epoch-based: entries tagged with a version other
// than the one asked for are treated as misses and dropped lazily, so a
// graph reload never needs a synchronous sweep.
package cache

import (
	"container/list"
	"sync"

	"github.com/akorchak/pathfinder/internal/query"
)

// DefaultCapacity bounds the cache when the caller passes a non-positive size.
const DefaultCapacity = 1024

type entry struct {
	sig     string
	version uint64
	result  *query.Result
}

// Cache is a bounded LRU of query results, safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element // signature → element holding *entry
	order    *list.List               // front = most recently used

	hits   uint64
	misses uint64
}

// New creates a Cache holding at most capacity entries.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached result for sig computed at version. An entry stored
// under an older version is dropped and reported as a miss.
func (c *Cache) Get(sig string, version uint64) (*query.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[sig]
	if !ok {
		c.misses++
		return nil, false
	}
	e := el.Value.(*entry)
	if e.version != version {
		c.order.Remove(el)
		delete(c.entries, sig)
		c.misses++
		return nil, false
	}
	c.order.MoveToFront(el)
	c.hits++
	return e.result, true
}

// Put stores res for sig at version, evicting the least recently used entry
// when over capacity. Callers only store successful results; failures are
// never cached.
func (c *Cache) Put(sig string, version uint64, res *query.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[sig]; ok {
		e := el.Value.(*entry)
		e.version = version
		e.result = res
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&entry{sig: sig, version: version, result: res})
	c.entries[sig] = el
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).sig)
	}
}

// Len returns the number of live entries, stale ones included until they are
// touched.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops everything.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
