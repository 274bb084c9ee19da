// Package cachetest provides generic test cases for Cache implementations.
package cachetest

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	dataloader "github.com/ubugeeei/bgql-sub002"
	"golang.org/x/sync/errgroup"
)

// TestCache runs the basic conformance suite against a fresh cache from the
// provider: set/get round trips, overwrite, delete and clear semantics.
func TestCache(t *testing.T, provider func() (dataloader.Cache[uint8, string], func())) {
	t.Run("GetMissing", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		if value, ok := cache.Get(1); ok {
			t.Errorf("unexpected hit for missing key: %q", value)
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		cache.Set(1, "one")
		cache.Set(2, "two")

		got := map[uint8]string{}
		for _, key := range []uint8{1, 2} {
			value, ok := cache.Get(key)
			if !ok {
				t.Fatalf("missing key: %d", key)
			}
			got[key] = value
		}
		want := map[uint8]string{1: "one", 2: "two"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("unexpected values (-want +got):\n%s", diff)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		cache.Set(1, "one")
		cache.Set(1, "uno")
		if value, _ := cache.Get(1); value != "uno" {
			t.Errorf("unexpected value: %q (expected: uno)", value)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		cache.Set(1, "one")
		cache.Delete(1)
		if _, ok := cache.Get(1); ok {
			t.Error("key should be deleted")
		}

		// deleting a missing key is a no-op
		cache.Delete(2)
	})

	t.Run("Clear", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		for i := uint8(0); i < 10; i++ {
			cache.Set(i, "value")
		}
		cache.Clear()
		for i := uint8(0); i < 10; i++ {
			if _, ok := cache.Get(i); ok {
				t.Fatalf("key should be cleared: %d", i)
			}
		}
	})
}

// TestConcurrentAccess hammers a single cache from many goroutines to shake
// out races. Run it with the race detector enabled.
func TestConcurrentAccess(t *testing.T, provider func() (dataloader.Cache[uint8, string], func())) {
	t.Run("ConcurrentAccess", func(t *testing.T) {
		t.Parallel()

		cache, release := provider()
		defer release()

		var eg errgroup.Group
		for i := 0; i < 8; i++ {
			eg.Go(func() error {
				for j := 0; j < 1000; j++ {
					key := uint8(rand.IntN(64))
					switch rand.IntN(4) {
					case 0:
						cache.Set(key, fmt.Sprintf("value-%d", key))
					case 1:
						if value, ok := cache.Get(key); ok {
							if want := fmt.Sprintf("value-%d", key); value != want {
								return fmt.Errorf("unexpected value for key %d: %q (expected: %q)", key, value, want)
							}
						}
					case 2:
						cache.Delete(key)
					case 3:
						cache.Clear()
					}
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			t.Error(err)
		}
	})
}

// BenchmarkSet benchmarks the Set method of the cache.
func BenchmarkSet[K dataloader.KeyConstraint](b *testing.B, cache dataloader.Cache[K, string], keys []K) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(keys[i%len(keys)], "value")
	}
}

// BenchmarkGet benchmarks the Get method of the cache.
func BenchmarkGet[K dataloader.KeyConstraint](b *testing.B, cache dataloader.Cache[K, string], keys []K) {
	for _, key := range keys {
		cache.Set(key, "value")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Get(keys[i%len(keys)])
	}
}
