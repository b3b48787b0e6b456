package swiss

// ShardedIterator walks a snapshot of a ShardedMap's live entries. Each
// shard's slice of the snapshot is captured under that shard's read lock in
// turn (spec §4.6: "per-shard strongly consistent, cross-map weakly
// consistent") — a write landing in shard 3 after shard 1's snapshot was
// taken is not reflected in the iteration, but a write racing shard 1's own
// snapshot capture cannot produce a torn read of any single entry.
type ShardedIterator[K comparable, V any] struct {
	m *ShardedMap[K, V]

	entries []shardedEntry[K, V]
	i       int
}

type shardedEntry[K comparable, V any] struct {
	key K
	val V
}

// Iterate captures a snapshot of every shard's live entries and returns an
// iterator over it.
func (m *ShardedMap[K, V]) Iterate() *ShardedIterator[K, V] {
	it := &ShardedIterator[K, V]{m: m, i: -1}

	for _, s := range m.shards {
		s.withRead(func(t *table[K, V]) {
			for gi := range t.groups {
				g := &t.groups[gi]
				full := matchFull(g.ctrlWord())
				for full != 0 {
					slot := full.first()
					it.entries = append(it.entries, shardedEntry[K, V]{key: g.keys[slot], val: g.vals[slot]})
					full = full.next()
				}
			}
		})
	}

	return it
}

// Next advances to the next entry and reports whether one was found.
func (it *ShardedIterator[K, V]) Next() bool {
	it.i++
	return it.i < len(it.entries)
}

// Key returns the key at the current position. Only valid after a Next call
// that returned true.
func (it *ShardedIterator[K, V]) Key() K { return it.entries[it.i].key }

// Value returns the value at the current position. Only valid after a Next
// call that returned true.
func (it *ShardedIterator[K, V]) Value() V { return it.entries[it.i].val }

// Remove deletes the entry at the current position from the owning map.
// Unlike Iterator.Remove, this re-acquires the owning shard's exclusive
// lock: the snapshot backing this iterator is a copy, not a live view into
// any shard's table.
func (it *ShardedIterator[K, V]) Remove() error {
	if it.i < 0 || it.i >= len(it.entries) {
		return ErrIteratorState
	}
	_, _, err := it.m.Remove(it.entries[it.i].key)
	return err
}
