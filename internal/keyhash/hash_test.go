package keyhash_test

import (
	"testing"

	"github.com/ubugeeei/bgql-sub002/internal/keyhash"
)

func TestFor_Deterministic(t *testing.T) {
	t.Parallel()

	t.Run("int", func(t *testing.T) {
		t.Parallel()

		hash := keyhash.For[int]()
		for _, key := range []int{0, 1, -1, 1 << 40} {
			if hash(key) != hash(key) {
				t.Errorf("hash is not deterministic for %d", key)
			}
		}
		if hash(1) == hash(2) && hash(2) == hash(3) {
			t.Error("distinct keys all collide")
		}
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		hash := keyhash.For[string]()
		if hash("foo") != hash("foo") {
			t.Error("hash is not deterministic for foo")
		}
		if hash("foo") == hash("bar") && hash("bar") == hash("baz") {
			t.Error("distinct keys all collide")
		}
	})

	t.Run("float64", func(t *testing.T) {
		t.Parallel()

		hash := keyhash.For[float64]()
		if hash(1.5) != hash(1.5) {
			t.Error("hash is not deterministic for 1.5")
		}
	})

	t.Run("uint32", func(t *testing.T) {
		t.Parallel()

		hash := keyhash.For[uint32]()
		if hash(7) != hash(7) {
			t.Error("hash is not deterministic for 7")
		}
	})
}

func TestFor_StructFallback(t *testing.T) {
	t.Parallel()

	type composite struct {
		Kind string
		ID   int
	}

	hash := keyhash.For[composite]()
	a := composite{Kind: "user", ID: 1}
	b := composite{Kind: "user", ID: 2}
	if hash(a) != hash(a) {
		t.Error("hash is not deterministic for struct keys")
	}
	if hash(a) == hash(b) {
		t.Error("distinct struct keys collide")
	}
}

func TestFor_UintptrPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for uintptr keys, but did not panic")
		}
	}()
	keyhash.For[uintptr]()
}
