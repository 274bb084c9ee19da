package dataloader

import (
	"context"
)

// Option is the interface for the options of a Loader.
type Option[K KeyConstraint, V ValueConstraint] interface {
	apply(*Loader[K, V])
}

type optionFunc[K KeyConstraint, V ValueConstraint] func(*Loader[K, V])

func (f optionFunc[K, V]) apply(l *Loader[K, V]) {
	f(l)
}

// WithName sets the loader's name. GetOrCreate sets it automatically for
// loaders obtained through a Registry.
func WithName[K KeyConstraint, V ValueConstraint](name string) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.name = name
	})
}

// WithMaxBatchSize caps the number of keys per batch function call.
// When more keys are pending they are split into multiple flushes.
// The default of 0 means no cap. The size must not be negative.
func WithMaxBatchSize[K KeyConstraint, V ValueConstraint](size int) Option[K, V] {
	if size < 0 {
		panic("max batch size must not be negative")
	}
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.maxBatchSize = size
	})
}

// WithScheduler sets the flush strategy of the loader.
// The default is scheduler.Yield.
func WithScheduler[K KeyConstraint, V ValueConstraint](s Scheduler) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.sched = s
	})
}

// WithCache sets the cache backing the loader.
// The default is a flat mutex-guarded map.
func WithCache[K KeyConstraint, V ValueConstraint](cache Cache[K, V]) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.cache = cache
	})
}

// WithCloner sets the value cloner used when one fetched value is handed to
// multiple waiters. The default is NopValueCloner, which shares the value.
func WithCloner[K KeyConstraint, V ValueConstraint](cloner ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.cloner = cloner
	})
}

// WithBackgroundContextProvider sets the context provider for dispatched
// batches. The provider must return a new context for each call. Binding it
// to the request's context makes request teardown cancel in-flight batches.
// The default provider is context.Background.
func WithBackgroundContextProvider[K KeyConstraint, V ValueConstraint](provider func() context.Context) Option[K, V] {
	return optionFunc[K, V](func(l *Loader[K, V]) {
		l.context = provider
	})
}
