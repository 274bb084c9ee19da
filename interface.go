package dataloader

import (
	"context"
)

// KeyConstraint is an interface for key constraints.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// BatchFunc loads the values for a batch of keys in a single call.
//
// The keys slice is ordered in first-request order and contains no duplicates.
// A key that is absent from the returned map means the key was not found;
// the batch function must not return an error for individual missing keys.
// A non-nil error means the entire batch could not be serviced, and it is
// delivered to every caller waiting on the batch.
type BatchFunc[K KeyConstraint, V ValueConstraint] func(ctx context.Context, keys []K) (map[K]V, error)

// Cache is a request-scoped value store owned by a single Loader.
// Implementations must be thread-safe.
//
// The loader writes only values obtained from successful batch results or
// from Prime; failed keys are never stored. Entries live for the lifetime
// of the owning request, so implementations need no expiration.
type Cache[K KeyConstraint, V ValueConstraint] interface {
	// Get retrieves a value by its key.
	// The second return value reports whether the key was present.
	Get(key K) (V, bool)

	// Set stores a value with the given key.
	// If the key already exists, it overwrites the existing value.
	Set(key K, value V)

	// Delete removes the value with the given key, if any.
	Delete(key K)

	// Clear removes all values.
	Clear()
}

// Scheduler decides when a pending batch is flushed to the batch function.
//
// Schedule is called exactly once per batch, when its first key is enqueued,
// and must arrange for flush to be invoked later from another goroutine.
// Invoking flush synchronously from Schedule is not allowed: Schedule runs
// with the loader's internal lock held. Invoking flush more than once is
// harmless; the loader dispatches each batch at most once.
type Scheduler interface {
	Schedule(flush func())
}

// ScheduleFunc is a function type that implements the Scheduler interface.
type ScheduleFunc func(flush func())

// Schedule calls the function.
func (f ScheduleFunc) Schedule(flush func()) {
	f(flush)
}
