// Package memcache provides the in-memory Cache implementations used to back
// loaders.
//
// The cache can be sharded across multiple buckets to reduce lock contention
// when many resolver goroutines hit the same loader. Keys are distributed
// across buckets with a per-key-type hash function, which can be overridden
// with WithKeyHash. Entries never expire; the cache is meant to live for a
// single request and be discarded with it.
package memcache
