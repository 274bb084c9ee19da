// Package keyhash derives hash functions for comparable key types.
// It is used to shard keys across cache buckets.
package keyhash

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"math"
	"sync"

	"github.com/goccy/go-reflect"
)

// For returns a FNV-1a hash function for the key type K.
//
// Integer, float and string keys are hashed over their raw representation.
// Any other comparable key type (structs, arrays, booleans) falls back to
// hashing its fmt.Sprint rendering, which is slower but always valid for a
// comparable type.
func For[K comparable]() func(K) int {
	var zero K
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(key K) int {
			return hashUint64(uint64(reflect.ValueOf(key).Int()))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(key K) int {
			return hashUint64(reflect.ValueOf(key).Uint())
		}
	case reflect.Float32, reflect.Float64:
		return func(key K) int {
			return hashUint64(math.Float64bits(reflect.ValueOf(key).Float()))
		}
	case reflect.String:
		return func(key K) int {
			return hashString(reflect.ValueOf(key).String())
		}
	case reflect.Uintptr, reflect.UnsafePointer:
		panic(fmt.Sprintf("raw pointer type cannot be a shard key: %T", zero))
	default:
		return func(key K) int {
			return hashString(fmt.Sprint(key))
		}
	}
}

// hasherPool pools FNV-1a states to avoid an allocation per hash.
var hasherPool = sync.Pool{
	New: func() any {
		return fnv.New64a()
	},
}

func hashUint64(v uint64) int {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hashBytes(b[:])
}

func hashString(s string) int {
	h := hasherPool.Get().(hash.Hash64)
	defer putHasher(h)

	_, _ = h.Write([]byte(s))
	return int(h.Sum64())
}

func hashBytes(b []byte) int {
	h := hasherPool.Get().(hash.Hash64)
	defer putHasher(h)

	_, _ = h.Write(b)
	return int(h.Sum64())
}

func putHasher(h hash.Hash64) {
	h.Reset()
	hasherPool.Put(h)
}
