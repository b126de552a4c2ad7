package store

import "sync"

// Cache is a keyed entity cache holding the last-known server
// representation per id. Puts are last-write-wins upserts, visible to
// subscribers synchronously. There is no eviction: the cache grows for the
// session lifetime, an accepted tradeoff for session-scoped usage.
type Cache[T any] struct {
	mu    sync.RWMutex
	items map[int64]T
	subs  []func(id int64, value T)
}

// NewCache returns an empty cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{items: make(map[int64]T)}
}

// Get returns the cached entity for id.
func (c *Cache[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	return v, ok
}

// Put upserts the entity and notifies every subscriber before returning.
func (c *Cache[T]) Put(id int64, value T) {
	c.mu.Lock()
	c.items[id] = value
	subs := c.subs
	c.mu.Unlock()

	for _, fn := range subs {
		fn(id, value)
	}
}

// Delete removes the entity for id, if cached.
func (c *Cache[T]) Delete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
}

// List returns the entities matching pred, or all entities when pred is
// nil. Order is unspecified.
func (c *Cache[T]) List(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, v := range c.items {
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	return out
}

// Len returns the number of cached entities.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Subscribe registers an observer called synchronously on every Put.
// Subscriptions live for the session.
func (c *Cache[T]) Subscribe(fn func(id int64, value T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}
