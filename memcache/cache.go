package memcache

import (
	"sync"

	dataloader "github.com/ubugeeei/bgql-sub002"
)

type bucket[K dataloader.KeyConstraint, V dataloader.ValueConstraint] struct {
	m  map[K]V
	mu sync.RWMutex
}

// New creates a new in-memory cache.
// With a buckets size of 1 (the default) the cache is a single locked map;
// larger sizes shard keys across buckets by hash.
func New[K dataloader.KeyConstraint, V dataloader.ValueConstraint](opts ...Option[K, V]) dataloader.Cache[K, V] {
	options := defaultOptions[K, V]()
	for _, opt := range opts {
		opt.apply(&options)
	}

	if options.bucketsSize == 1 {
		return &cache[K, V]{
			bucket:  bucket[K, V]{m: map[K]V{}},
			options: options,
		}
	}

	buckets := make([]*bucket[K, V], options.bucketsSize)
	for i := range buckets {
		buckets[i] = &bucket[K, V]{m: map[K]V{}}
	}
	return &shardedCache[K, V]{
		buckets: buckets,
		options: options,
	}
}

type cache[K dataloader.KeyConstraint, V dataloader.ValueConstraint] struct {
	bucket[K, V]
	options options[K, V]
}

var _ dataloader.Cache[uint8, struct{}] = (*cache[uint8, struct{}])(nil)

func (c *cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.options.cloner.CloneValue(value), true
}

func (c *cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = c.options.cloner.CloneValue(value)
}

func (c *cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.m, key)
}

func (c *cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m = map[K]V{}
}

type shardedCache[K dataloader.KeyConstraint, V dataloader.ValueConstraint] struct {
	buckets []*bucket[K, V]
	options options[K, V]
}

var _ dataloader.Cache[uint8, struct{}] = (*shardedCache[uint8, struct{}])(nil)

// resolveBucket returns the bucket that holds the given key.
func (c *shardedCache[K, V]) resolveBucket(key K) *bucket[K, V] {
	index := c.options.hashKey(key) % len(c.buckets)
	if index < 0 {
		index *= -1
	}
	return c.buckets[index]
}

func (c *shardedCache[K, V]) Get(key K) (V, bool) {
	b := c.resolveBucket(key)
	b.mu.RLock()
	defer b.mu.RUnlock()

	value, ok := b.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.options.cloner.CloneValue(value), true
}

func (c *shardedCache[K, V]) Set(key K, value V) {
	b := c.resolveBucket(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	b.m[key] = c.options.cloner.CloneValue(value)
}

func (c *shardedCache[K, V]) Delete(key K) {
	b := c.resolveBucket(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.m, key)
}

func (c *shardedCache[K, V]) Clear() {
	for _, b := range c.buckets {
		b.mu.Lock()
		b.m = map[K]V{}
		b.mu.Unlock()
	}
}
