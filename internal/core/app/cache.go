package app

import (
	"container/list"
	"crypto/sha256"
	"doctypes/internal/core/ports"
	"sync"
)

// parseCache remembers the signatures of recently scanned files keyed by
// path, so watch-mode rescans only re-parse files whose content changed.
// The least recently used entry is evicted once capacity is reached.
type parseCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used
}

type cacheEntry struct {
	path       string
	sum        [sha256.Size]byte
	signatures []ports.Signature
}

func newParseCache(capacity int) *parseCache {
	if capacity <= 0 {
		return nil
	}
	return &parseCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// get returns the cached signatures for path when its content still hashes
// to sum. A stale entry is dropped.
func (c *parseCache) get(path string, sum [sha256.Size]byte) ([]ports.Signature, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[path]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*cacheEntry)
	if entry.sum != sum {
		c.order.Remove(el)
		delete(c.items, path)
		return nil, false
	}
	c.order.MoveToFront(el)
	return entry.signatures, true
}

func (c *parseCache) put(path string, sum [sha256.Size]byte, sigs []ports.Signature) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[path]; ok {
		c.order.MoveToFront(el)
		entry := el.Value.(*cacheEntry)
		entry.sum = sum
		entry.signatures = sigs
		return
	}

	if c.order.Len() >= c.capacity {
		if back := c.order.Back(); back != nil {
			c.order.Remove(back)
			delete(c.items, back.Value.(*cacheEntry).path)
		}
	}
	c.items[path] = c.order.PushFront(&cacheEntry{path: path, sum: sum, signatures: sigs})
}

func (c *parseCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
