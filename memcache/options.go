package memcache

import (
	dataloader "github.com/ubugeeei/bgql-sub002"
	"github.com/ubugeeei/bgql-sub002/internal/keyhash"
)

// DefaultBucketsSize is the default number of buckets in the cache.
var DefaultBucketsSize = 1

// Option is the interface for the options of the in-memory cache.
type Option[K dataloader.KeyConstraint, V dataloader.ValueConstraint] interface {
	apply(*options[K, V])
}

type optionFunc[K dataloader.KeyConstraint, V dataloader.ValueConstraint] func(*options[K, V])

func (f optionFunc[K, V]) apply(o *options[K, V]) {
	f(o)
}

// WithKeyHash sets the hash function used to distribute keys across buckets.
func WithKeyHash[K dataloader.KeyConstraint, V dataloader.ValueConstraint](f func(K) int) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.hashKey = f
	})
}

// WithBucketsSize sets the number of buckets in the cache.
// The number of buckets must be a natural number.
func WithBucketsSize[K dataloader.KeyConstraint, V dataloader.ValueConstraint](bucketsSize int) Option[K, V] {
	if bucketsSize <= 0 {
		panic("bucketsSize must be natural number")
	}
	return optionFunc[K, V](func(o *options[K, V]) {
		o.bucketsSize = bucketsSize
	})
}

// WithCloner sets the value cloner applied when values enter and leave the
// cache, isolating stored values from caller mutation.
// The default is dataloader.NopValueCloner.
func WithCloner[K dataloader.KeyConstraint, V dataloader.ValueConstraint](cloner dataloader.ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(o *options[K, V]) {
		o.cloner = cloner
	})
}

type options[K dataloader.KeyConstraint, V dataloader.ValueConstraint] struct {
	hashKey     func(K) int
	bucketsSize int
	cloner      dataloader.ValueCloner[V]
}

func defaultOptions[K dataloader.KeyConstraint, V dataloader.ValueConstraint]() options[K, V] {
	return options[K, V]{
		hashKey:     keyhash.For[K](),
		bucketsSize: DefaultBucketsSize,
		cloner:      dataloader.NopValueCloner[V]{},
	}
}
