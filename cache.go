package dataloader

import "sync"

// mapCache is the default Cache: a flat mutex-guarded map.
// It lives here so a Loader works with zero configuration; the memcache
// package provides a sharded alternative for contended loaders.
type mapCache[K KeyConstraint, V ValueConstraint] struct {
	mu sync.RWMutex
	m  map[K]V
}

var _ Cache[uint8, struct{}] = (*mapCache[uint8, struct{}])(nil)

func newMapCache[K KeyConstraint, V ValueConstraint]() *mapCache[K, V] {
	return &mapCache[K, V]{m: map[K]V{}}
}

func (c *mapCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.m[key]
	return value, ok
}

func (c *mapCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = value
}

func (c *mapCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.m, key)
}

func (c *mapCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m = map[K]V{}
}
