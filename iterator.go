package swiss

import "math/rand/v2"

// Iterator walks the live entries of a Map, Set, or single table core in a
// deterministically-pseudorandomized order fixed at construction time
// (spec §4.5). Iteration order varies across iterators created over the
// same table and carries no relationship to insertion order; callers must
// not rely on any ordering.
//
// An Iterator must not outlive mutations that trigger a grow or
// same-capacity rebuild of the underlying table — like the teacher's
// StableMap/StableSet, this package does not attempt to make iterators
// rehash-safe. Removing via the iterator itself is fine (Remove never
// triggers a rehash, spec §4.5); inserting or removing through the Map/Set
// directly while an Iterator is live is not supported.
type Iterator[K comparable, V any] struct {
	t *table[K, V]

	start uint64
	step  uint64
	i     uint64 // next offset to try, 0..capacity

	lastIdx  uint64
	haveLast bool
	removed  bool
}

// newIterator picks a random (start, step) pair per spec §4.5: step must be
// odd so that, since capacity is a power of two, (start + i*step) mod
// capacity visits every index exactly once as i ranges over [0, capacity).
func newIterator[K comparable, V any](t *table[K, V]) *Iterator[K, V] {
	it := &Iterator[K, V]{t: t}
	if t.capacity > 0 {
		it.start = rand.Uint64() % t.capacity
		it.step = rand.Uint64() | 1
	}
	return it
}

// Next advances to the next live entry and reports whether one was found.
func (it *Iterator[K, V]) Next() bool {
	it.removed = false

	for it.i < it.t.capacity {
		idx := (it.start + it.i*it.step) % it.t.capacity
		it.i++

		g := &it.t.groups[idx/groupSize]
		slot := idx % groupSize
		if g.ctrls[slot] < slotEmpty { // live fingerprint, top bit clear
			it.lastIdx = idx
			it.haveLast = true
			return true
		}
	}

	return false
}

// Key returns the key at the current position. Only valid after a Next
// call that returned true.
func (it *Iterator[K, V]) Key() K {
	g := &it.t.groups[it.lastIdx/groupSize]
	return g.keys[it.lastIdx%groupSize]
}

// Value returns the value at the current position. Only valid after a
// Next call that returned true.
func (it *Iterator[K, V]) Value() V {
	g := &it.t.groups[it.lastIdx/groupSize]
	return g.vals[it.lastIdx%groupSize]
}

// Remove deletes the entry at the current position. Spec §4.5: iterators
// must not trigger a rehash themselves, because enclosing algorithms (e.g.
// a retain-all built from repeated Next/Remove) may have already computed
// the next index to visit; triggering a rebuild mid-walk would invalidate
// it. The slot is simply marked DELETED — the rebuild, if one becomes due,
// happens on the next operation that does consult the Rehash Controller
// (a subsequent Put, or a Remove that finds its key, on the owning
// Map/Set). PutAll/AddAll do not run that check; they only pre-grow when
// their projected size reaches max_load.
//
// Returns ErrIteratorState if called before Next, or twice in a row without
// an intervening Next.
func (it *Iterator[K, V]) Remove() error {
	if !it.haveLast || it.removed {
		return ErrIteratorState
	}
	it.t.eraseAt(it.lastIdx)
	it.removed = true
	return nil
}
