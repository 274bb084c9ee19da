package dataloader

import (
	"context"
	"fmt"
	"sync"
)

// Registry is a request-scoped, name-keyed container of loaders.
//
// A Registry is created once per inbound request, carried through the
// request's context, and discarded at request end. It must never be shared
// across requests: doing so leaks cached values between them. Loaders are
// created lazily on first named access and memoized, so every resolver
// asking for the same name within one request gets the same instance.
type Registry struct {
	mu      sync.Mutex
	loaders map[string]any
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{loaders: map[string]any{}}
}

// GetOrCreate returns the loader registered under name, constructing it
// from batchFn and opts on first access. Construction is atomic: concurrent
// first access from multiple resolvers never produces two loaders for the
// same name. batchFn and opts are ignored when the loader already exists.
//
// It fails with ErrLoaderMismatch when name is already bound to a loader
// with different key or value types.
func GetOrCreate[K KeyConstraint, V ValueConstraint](r *Registry, name string, batchFn BatchFunc[K, V], opts ...Option[K, V]) (*Loader[K, V], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.loaders[name]; ok {
		loader, ok := existing.(*Loader[K, V])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrLoaderMismatch, name)
		}
		return loader, nil
	}

	loader := NewLoader(batchFn, append(opts, WithName[K, V](name))...)
	r.loaders[name] = loader
	return loader, nil
}

// ClearAll discards all loaders, typically between test cases or at request
// teardown. Loaders already handed out keep working on their own state;
// ClearAll only resets the name-to-loader map, so a subsequent GetOrCreate
// for the same name constructs a fresh loader.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loaders = map[string]any{}
}

type registryContextKey struct{}

// NewContext returns a copy of ctx carrying the registry.
func NewContext(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, registryContextKey{}, r)
}

// FromContext returns the registry carried by ctx, if any.
func FromContext(ctx context.Context) (*Registry, bool) {
	r, ok := ctx.Value(registryContextKey{}).(*Registry)
	return r, ok
}
