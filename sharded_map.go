package swiss

import "sync/atomic"

// defaultShardCount matches the teacher pack's concurrent map default
// concurrency level (listr0ng-go-concurrentMap's DEFAULT_CONCURRENCY_LEVEL),
// rounded to the nearest power of two ShardedMap requires for its mask-based
// shard selection.
const defaultShardCount = 16

// ShardedMap is the Sharded Concurrent Wrapper (spec §4.6): a fixed array of
// independent table cores, each behind its own shard lock, selected by the
// HIGH bits of the smeared hash so shard selection never overlaps with H1
// (the probe sequence's group selector, drawn from the same smeared hash's
// low/middle bits) or H2 (the low 7 bits). Safe for concurrent use by
// multiple goroutines.
//
// Size is tracked by a lock-free aggregate counter rather than summed across
// shards on every call, so Size and IsEmpty never need to touch a shard
// lock.
//
// Iteration (see sharded_iterator.go) is a snapshot: strongly consistent
// within each shard, weakly consistent across the whole map, matching spec
// §4.6's explicit relaxation of the single-table iterator's guarantees.
type ShardedMap[K comparable, V any] struct {
	shards    []*shard[K, V]
	shardMask uint64
	shardBits uint

	hashFunc     HashFunc[K]
	rejectNilKey bool

	size atomic.Int64
}

// ShardOption configures a ShardedMap constructor in addition to the
// ordinary table Option values forwarded to every shard.
type ShardOption[K comparable, V any] func(*shardedConfig[K, V])

type shardedConfig[K comparable, V any] struct {
	shardCount int
}

// WithShardCount overrides the default shard count. Rounded up to the next
// power of two; must be positive.
func WithShardCount[K comparable, V any](n int) ShardOption[K, V] {
	return func(c *shardedConfig[K, V]) { c.shardCount = n }
}

// NewShardedMap constructs a ShardedMap with capacity for at least
// initialCapacity entries, spread evenly across its shards.
func NewShardedMap[K comparable, V any](initialCapacity int, sopts []ShardOption[K, V], opts ...Option[K, V]) (*ShardedMap[K, V], error) {
	scfg := shardedConfig[K, V]{shardCount: defaultShardCount}
	for _, o := range sopts {
		o(&scfg)
	}
	if scfg.shardCount <= 0 {
		return nil, ErrInvalidConfig
	}
	shardCount := int(nextPow2(uint64(scfg.shardCount)))
	if shardCount < 1 {
		return nil, ErrInvalidConfig
	}
	// spec §6/§7: shard_count's log2 must leave H2's fingerprint bits
	// disjoint from the bits shardFor consults. H2 there is modeled as the
	// low 7 bits of a 32-bit hash, so the ceiling is 32-7=25 shard-selector
	// bits; this module smears and splits a 64-bit hash instead (hash.go),
	// so the same reasoning caps shardBits at 64-7=57 here.
	if bitsLen64(uint64(shardCount))-1 > 64-7 {
		return nil, ErrInvalidConfig
	}

	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.hashFunc == nil {
		cfg.hashFunc = defaultHashFunc[K]()
	}

	perShard := initialCapacity / shardCount
	shards := make([]*shard[K, V], shardCount)
	for i := range shards {
		s, err := newShard[K, V](perShard, true, WithLoadFactor[K, V](cfg.loadFactor), WithHashFunc[K, V](cfg.hashFunc))
		if err != nil {
			return nil, err
		}
		shards[i] = s
	}

	return &ShardedMap[K, V]{
		shards:       shards,
		shardMask:    uint64(shardCount) - 1,
		shardBits:    uint(bitsLen64(uint64(shardCount)) - 1),
		hashFunc:     cfg.hashFunc,
		rejectNilKey: true,
	}, nil
}

// bitsLen64 returns the number of bits needed to represent v (0 for v==0),
// i.e. the teacher's idiom for log2-adjacent bit math, used here to turn a
// power-of-two shard count into a shift width.
func bitsLen64(v uint64) int {
	n := 0
	for v > 0 {
		v >>= 1
		n++
	}
	return n
}

// shardFor selects the shard owning key: the smeared hash's top shardBits
// bits (spec §4.6 requires high bits specifically, so shard selection never
// overlaps with H1's group-selector bits or H2's low-7-bit fingerprint,
// both drawn from the same smear).
func (m *ShardedMap[K, V]) shardFor(key K) *shard[K, V] {
	h := smear(m.hashFunc(key))
	idx := h >> (64 - m.shardBits)
	return m.shards[idx&m.shardMask]
}

// Size returns the number of live entries across every shard, read from a
// lock-free aggregate counter.
func (m *ShardedMap[K, V]) Size() int { return int(m.size.Load()) }

// IsEmpty reports whether the map has no live entries.
func (m *ShardedMap[K, V]) IsEmpty() bool { return m.size.Load() == 0 }

// ContainsKey reports whether key is present, via an optimistic read with a
// locked fallback.
func (m *ShardedMap[K, V]) ContainsKey(key K) (bool, error) {
	if m.rejectNilKey && isNilKey(key) {
		return false, ErrNullKey
	}
	_, ok := m.shardFor(key).optimisticGet(key)
	return ok, nil
}

// Get returns the value stored for key, if present, via an optimistic read
// with a locked fallback.
func (m *ShardedMap[K, V]) Get(key K) (V, bool, error) {
	if m.rejectNilKey && isNilKey(key) {
		var zero V
		return zero, false, ErrNullKey
	}
	v, ok := m.shardFor(key).optimisticGet(key)
	return v, ok, nil
}

// Put inserts or overwrites key's value under the owning shard's exclusive
// lock and returns the previous value, if any.
func (m *ShardedMap[K, V]) Put(key K, value V) (V, bool, error) {
	if m.rejectNilKey && isNilKey(key) {
		var zero V
		return zero, false, ErrNullKey
	}

	var prev V
	var had bool
	m.shardFor(key).withWrite(func(t *table[K, V]) {
		prev, had = t.put(key, value)
	})
	if !had {
		m.size.Add(1)
	}
	return prev, had, nil
}

// Remove deletes key under the owning shard's exclusive lock and returns its
// previous value, if present.
func (m *ShardedMap[K, V]) Remove(key K) (V, bool, error) {
	if m.rejectNilKey && isNilKey(key) {
		var zero V
		return zero, false, ErrNullKey
	}

	var prev V
	var had bool
	m.shardFor(key).withWrite(func(t *table[K, V]) {
		prev, had = t.remove(key)
	})
	if had {
		m.size.Add(-1)
	}
	return prev, had, nil
}

// PutAll inserts or overwrites every entry of entries. Entries are bucketed
// by owning shard first so each shard's exclusive lock is taken at most
// once, rather than once per entry.
func (m *ShardedMap[K, V]) PutAll(entries map[K]V) error {
	if len(entries) == 0 {
		return nil
	}

	buckets := make([]map[K]V, len(m.shards))
	for k, v := range entries {
		if m.rejectNilKey && isNilKey(k) {
			return ErrNullKey
		}
		idx := (smear(m.hashFunc(k)) >> (64 - m.shardBits)) & m.shardMask
		if buckets[idx] == nil {
			buckets[idx] = make(map[K]V)
		}
		buckets[idx][k] = v
	}

	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		s := m.shards[i]
		var added int64
		s.withWrite(func(t *table[K, V]) {
			before := t.live
			t.putAll(bucket)
			added = int64(t.live) - int64(before)
		})
		m.size.Add(added)
	}
	return nil
}

// Clear removes every entry from every shard, retaining each shard's
// capacity.
func (m *ShardedMap[K, V]) Clear() {
	for _, s := range m.shards {
		s.withWrite(func(t *table[K, V]) { t.clear() })
	}
	m.size.Store(0)
}
