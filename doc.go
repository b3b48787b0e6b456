// Package swiss implements an in-memory associative container library
// built around the SwissTable design: an open-addressed hash table with
// packed one-byte-per-slot metadata, SWAR-driven group matching, and
// triangular (quadratic) probing across groups of 8 slots.
//
// [Map] and [Set] are single-goroutine-owner containers. [ShardedMap]
// wraps a fixed array of independent tables behind per-shard locks and
// optimistic reads, and is safe for concurrent use.
//
// [Map] and [Set] iterators visit entries in an order randomized per
// iterator. [ShardedMap]'s snapshot iterator visits shards, and slots within
// each shard, in index order. No iteration order is stable across
// mutations; this package makes no ordering guarantees.
package swiss
