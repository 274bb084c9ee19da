package dataloader

import (
	"context"
	"fmt"
)

// SingleBatchFunc adapts a per-key fetch into a BatchFunc for sources that
// have no multi-get. Keys are fetched sequentially; the found result reports
// whether the key exists, and any error aborts the whole batch.
func SingleBatchFunc[K KeyConstraint, V ValueConstraint](fn func(ctx context.Context, key K) (value V, found bool, err error)) BatchFunc[K, V] {
	return func(ctx context.Context, keys []K) (map[K]V, error) {
		values := make(map[K]V, len(keys))
		for _, key := range keys {
			value, found, err := fn(ctx, key)
			if err != nil {
				return nil, err
			}
			if found {
				values[key] = value
			}
		}
		return values, nil
	}
}

// SliceBatchFunc adapts a slice-returning fetch into a BatchFunc.
// This fits the common "SELECT ... WHERE key IN (...)" shape, where the
// backing store returns rows in arbitrary order and without rows for missing
// keys. keyOf extracts the key a fetched value belongs to.
func SliceBatchFunc[K KeyConstraint, V ValueConstraint](keyOf func(V) K, fn func(ctx context.Context, keys []K) ([]V, error)) BatchFunc[K, V] {
	return func(ctx context.Context, keys []K) (map[K]V, error) {
		rows, err := fn(ctx, keys)
		if err != nil {
			return nil, err
		}
		values := make(map[K]V, len(rows))
		for _, row := range rows {
			values[keyOf(row)] = row
		}
		return values, nil
	}
}

// LintBatchFunc wraps a BatchFunc and validates that it follows the
// BatchFunc contract. In particular, it checks that the result never
// contains keys that were not requested. Contract violations panic, so this
// wrapper is meant for tests and development builds.
func LintBatchFunc[K KeyConstraint, V ValueConstraint](fn BatchFunc[K, V]) BatchFunc[K, V] {
	return func(ctx context.Context, keys []K) (map[K]V, error) {
		values, err := fn(ctx, keys)
		if err != nil {
			if values != nil {
				panic("batch function returned both values and an error")
			}
			return nil, err
		}

		requested := make(map[K]struct{}, len(keys))
		for _, key := range keys {
			requested[key] = struct{}{}
		}
		for key := range values {
			if _, ok := requested[key]; !ok {
				panic(fmt.Sprintf("batch function returned a value for unrequested key: %v", key))
			}
		}
		return values, nil
	}
}
