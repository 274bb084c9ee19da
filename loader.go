package dataloader

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/ubugeeei/bgql-sub002/internal/safecall"
	"github.com/ubugeeei/bgql-sub002/scheduler"
)

var errGoexit = errors.New("runtime.Goexit is called")

// Thunk is a deferred load result.
// Calling the thunk blocks until the result is available or the context
// passed to LoadThunk is done.
type Thunk[V ValueConstraint] func() (V, error)

// Loader batches, caches and deduplicates keyed lookups within one request.
//
// A Loader is safe for concurrent use. Every key is fetched at most once
// concurrently: callers requesting a key that is already pending or being
// fetched join the outstanding fetch instead of issuing a new one. How many
// distinct keys end up in one batch is decided by the configured Scheduler;
// see the scheduler package for the guarantees of each strategy.
type Loader[K KeyConstraint, V ValueConstraint] struct {
	name         string
	batchFn      BatchFunc[K, V]
	cache        Cache[K, V]
	sched        Scheduler
	cloner       ValueCloner[V]
	context      func() context.Context
	maxBatchSize int

	mu       sync.Mutex
	pending  *batch[K]
	inFlight map[K]*call[V]
}

// call is the shared single-flight handle for one key.
// All waiters for the key block on done and read value/err afterwards.
type call[V ValueConstraint] struct {
	done    chan struct{}
	value   V
	err     error
	waiters int
}

// batch is an ordered, duplicate-free set of keys awaiting one flush.
// Deduplication happens on enqueue: a key joins an existing call instead of
// being appended twice, so keys never holds duplicates.
type batch[K KeyConstraint] struct {
	keys []K
	once sync.Once
}

// NewLoader creates a Loader around the given batch function.
//
// With no options the loader uses an unbounded batch size, a flat in-memory
// cache, no value cloning, and the scheduler.Yield flush strategy.
// Loaders driven by a resolver executor usually want scheduler.Window
// instead, so that sibling resolvers issued in the same resolution wave
// coalesce into a single batch.
func NewLoader[K KeyConstraint, V ValueConstraint](batchFn BatchFunc[K, V], opts ...Option[K, V]) *Loader[K, V] {
	l := &Loader[K, V]{
		batchFn:  batchFn,
		context:  context.Background,
		inFlight: map[K]*call[V]{},
	}
	for _, o := range opts {
		o.apply(l)
	}
	if l.cache == nil {
		l.cache = newMapCache[K, V]()
	}
	if l.sched == nil {
		l.sched = scheduler.Yield{}
	}
	if l.cloner == nil {
		l.cloner = NopValueCloner[V]{}
	}
	return l
}

// Name returns the name the loader was registered under, if any.
func (l *Loader[K, V]) Name() string {
	return l.name
}

// Load retrieves the value for key, batching the fetch with other loads.
//
// A cached key returns immediately. A key with an outstanding fetch joins
// it. Otherwise the key is enqueued and Load blocks until the scheduler
// flushes the batch. Load fails with ErrNotFound when the batch result
// omits the key, with the batch function's own error when the whole batch
// failed, or with ctx.Err() when ctx is done first.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	return l.LoadThunk(ctx, key)()
}

// LoadThunk enqueues key and returns a thunk that blocks for the result.
// It never blocks itself, so a caller can enqueue keys against several
// loaders before awaiting any of them.
func (l *Loader[K, V]) LoadThunk(ctx context.Context, key K) Thunk[V] {
	if value, ok := l.cache.Get(key); ok {
		return resolvedThunk(value)
	}

	l.mu.Lock()
	if c, ok := l.inFlight[key]; ok {
		seq := c.waiters
		c.waiters++
		l.mu.Unlock()
		return l.waitThunk(ctx, c, seq)
	}
	if value, ok := l.cache.Get(key); ok {
		// the key resolved between the optimistic cache check and taking the lock
		l.mu.Unlock()
		return resolvedThunk(value)
	}

	c := &call[V]{done: make(chan struct{}), waiters: 1}
	l.inFlight[key] = c
	full := l.enqueueLocked(key)
	l.mu.Unlock()

	if full != nil {
		// a full batch dispatches immediately, without waiting for the
		// scheduler, and never on the caller's goroutine
		go l.dispatch(full)
	}
	return l.waitThunk(ctx, c, 0)
}

// LoadMany loads many keys in one coalesced pass.
//
// All keys are enqueued before any result is awaited, so they flush
// together (subject to the max batch size). Results are positional: the
// value and error at index i belong to keys[i], and each position fails or
// succeeds independently of its siblings.
func (l *Loader[K, V]) LoadMany(ctx context.Context, keys []K) ([]V, []error) {
	thunks := make([]Thunk[V], len(keys))
	for i, key := range keys {
		thunks[i] = l.LoadThunk(ctx, key)
	}

	values := make([]V, len(keys))
	errs := make([]error, len(keys))
	for i, thunk := range thunks {
		values[i], errs[i] = thunk()
	}
	return values, errs
}

// Prime stores the value as if it had been fetched for key.
// It reports whether the cache was updated: Prime is silently ignored when
// the key is currently pending or in flight, so a result that is about to
// arrive is never overwritten, and when the key is already cached.
// Use Clear before Prime to force-replace a cached value.
func (l *Loader[K, V]) Prime(key K, value V) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.inFlight[key]; ok {
		return false
	}
	if _, ok := l.cache.Get(key); ok {
		return false
	}
	l.cache.Set(key, value)
	return true
}

// Clear removes key from the cache only. Pending and in-flight fetches are
// unaffected. Clear never fails.
func (l *Loader[K, V]) Clear(key K) {
	l.cache.Delete(key)
}

// ClearAll empties the cache. It does not cancel in-flight fetches; their
// results are still written to the cache when they complete.
func (l *Loader[K, V]) ClearAll() {
	l.cache.Clear()
}

// enqueueLocked adds key to the pending batch, creating and scheduling a
// fresh batch when none is pending. It returns a non-nil batch when the
// batch reached maxBatchSize and must be dispatched by the caller after
// releasing the lock.
func (l *Loader[K, V]) enqueueLocked(key K) *batch[K] {
	if l.pending == nil {
		b := &batch[K]{}
		l.pending = b
		l.sched.Schedule(func() { l.dispatch(b) })
	}

	b := l.pending
	b.keys = append(b.keys, key)
	if l.maxBatchSize > 0 && len(b.keys) >= l.maxBatchSize {
		l.pending = nil
		return b
	}
	return nil
}

// dispatch flushes b, at most once regardless of how many times the
// scheduler or the batch-size cap trigger it.
func (l *Loader[K, V]) dispatch(b *batch[K]) {
	b.once.Do(func() {
		l.mu.Lock()
		if l.pending == b {
			l.pending = nil
		}
		keys := b.keys
		l.mu.Unlock()

		l.flush(keys)
	})
}

// flush invokes the batch function for keys and distributes the outcome.
// The batch runs on the loader's background context so that one caller's
// cancellation cannot abort the fetch for the other waiters.
func (l *Loader[K, V]) flush(keys []K) {
	if len(keys) == 0 {
		return
	}

	invoker := safecall.Invoker{
		OnGoexit: func() {
			l.reject(keys, errGoexit)
		},
	}

	var values map[K]V
	if err := invoker.Invoke(func() (err error) {
		values, err = l.batchFn(l.context(), keys)
		return
	}); err != nil {
		l.reject(keys, err)
		return
	}
	l.resolve(keys, values)
}

// resolve writes present values to the cache and releases every waiter.
// Keys absent from values fail with ErrNotFound and are not cached.
func (l *Loader[K, V]) resolve(keys []K, values map[K]V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		c, ok := l.inFlight[key]
		if !ok {
			continue
		}
		delete(l.inFlight, key)
		if value, ok := values[key]; ok {
			l.cache.Set(key, value)
			c.value = value
		} else {
			c.err = ErrNotFound
		}
		close(c.done)
	}
}

// reject releases every waiter of the flush with the same batch-wide error.
// Failed keys are never cached, so re-loading after a failure re-enqueues.
func (l *Loader[K, V]) reject(keys []K, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		c, ok := l.inFlight[key]
		if !ok {
			continue
		}
		delete(l.inFlight, key)
		c.err = err
		close(c.done)
	}
}

// waitThunk returns a thunk blocking on c's completion or ctx.
func (l *Loader[K, V]) waitThunk(ctx context.Context, c *call[V], seq int) Thunk[V] {
	return func() (V, error) {
		select {
		case <-c.done:
			if c.err != nil {
				if c.err == errGoexit {
					runtime.Goexit()
				}
				var zero V
				return zero, c.err
			}
			if seq != 0 {
				// note: we clone the value only for the second and later
				// waiters to avoid unnecessary cloning for a single receiver.
				return l.cloner.CloneValue(c.value), nil
			}
			return c.value, nil
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}
}

func resolvedThunk[V ValueConstraint](value V) Thunk[V] {
	return func() (V, error) {
		return value, nil
	}
}
