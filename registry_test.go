package dataloader_test

import (
	"context"
	"errors"
	"testing"

	dataloader "github.com/ubugeeei/bgql-sub002"
	"golang.org/x/sync/errgroup"
)

func userBatch(_ context.Context, keys []int) (map[int]string, error) {
	result := make(map[int]string, len(keys))
	for _, key := range keys {
		result[key] = "user"
	}
	return result, nil
}

func TestGetOrCreate_MemoizesByName(t *testing.T) {
	t.Parallel()

	registry := dataloader.NewRegistry()

	first, err := dataloader.GetOrCreate(registry, "users", userBatch)
	if err != nil {
		t.Fatal(err)
	}
	second, err := dataloader.GetOrCreate(registry, "users", userBatch)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same loader instance for the same name")
	}
	if first.Name() != "users" {
		t.Errorf("unexpected loader name: %q (expected: users)", first.Name())
	}

	other, err := dataloader.GetOrCreate(registry, "posts", userBatch)
	if err != nil {
		t.Fatal(err)
	}
	if other == first {
		t.Error("expected a distinct loader for a distinct name")
	}
}

func TestGetOrCreate_TypeMismatch(t *testing.T) {
	t.Parallel()

	registry := dataloader.NewRegistry()
	if _, err := dataloader.GetOrCreate(registry, "users", userBatch); err != nil {
		t.Fatal(err)
	}

	_, err := dataloader.GetOrCreate(registry, "users", func(_ context.Context, keys []string) (map[string]int, error) {
		return nil, nil
	})
	if !errors.Is(err, dataloader.ErrLoaderMismatch) {
		t.Errorf("unexpected error: %v (expected: %v)", err, dataloader.ErrLoaderMismatch)
	}
}

func TestGetOrCreate_ConcurrentFirstAccess(t *testing.T) {
	t.Parallel()

	registry := dataloader.NewRegistry()

	loaders := make([]*dataloader.Loader[int, string], 16)
	var eg errgroup.Group
	for i := range loaders {
		eg.Go(func() error {
			loader, err := dataloader.GetOrCreate(registry, "users", userBatch)
			loaders[i] = loader
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}

	for i, loader := range loaders {
		if loader != loaders[0] {
			t.Fatalf("goroutine %d got a different loader instance", i)
		}
	}
}

func TestRegistry_ClearAll(t *testing.T) {
	t.Parallel()

	registry := dataloader.NewRegistry()
	first, err := dataloader.GetOrCreate(registry, "users", userBatch)
	if err != nil {
		t.Fatal(err)
	}

	registry.ClearAll()

	second, err := dataloader.GetOrCreate(registry, "users", userBatch)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("expected a fresh loader after ClearAll")
	}
}

func TestRegistry_Context(t *testing.T) {
	t.Parallel()

	if _, ok := dataloader.FromContext(t.Context()); ok {
		t.Error("expected no registry on a bare context")
	}

	registry := dataloader.NewRegistry()
	ctx := dataloader.NewContext(t.Context(), registry)
	got, ok := dataloader.FromContext(ctx)
	if !ok {
		t.Fatal("expected a registry on the context")
	}
	if got != registry {
		t.Error("unexpected registry instance")
	}
}
