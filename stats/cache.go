package stats

import (
	"container/list"
	"sync"
)

// lruCache is a small size-bounded cache for memoized aggregates. Entries
// are keyed on the store version, so eviction is the only removal path;
// stale versions age out naturally.
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key  string
	data T
}

func newLRUCache[T any](maxSize int) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*cacheItem[T]).data, true
}

func (c *lruCache[T]) put(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheItem[T]).data = data
		return
	}
	c.items[key] = c.lru.PushFront(&cacheItem[T]{key: key, data: data})

	for c.lru.Len() > c.maxSize {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheItem[T]).key)
	}
}
