// Package scheduler provides flush strategies for batched loaders.
//
// A strategy decides how long a loader keeps collecting keys before the
// pending batch is handed to the batch function. The two strategies make
// different coalescing guarantees:
//
//   - Window guarantees that all keys requested within one batching window
//     of the first key coalesce into a single batch. This is the strategy to
//     use under a resolver executor, where sibling resolvers of the same
//     resolution wave should produce exactly one backing query.
//
//   - Yield flushes as soon as the dispatch goroutine gets scheduled. Only
//     callers that are concurrently blocked before dispatch join the batch;
//     callers for different keys arriving at the same physical time are not
//     guaranteed to share a batch. This is a weaker guarantee than Window's,
//     in exchange for adding no latency.
//
// Regardless of strategy, the loader itself guarantees that no key is
// fetched more than once concurrently.
package scheduler
