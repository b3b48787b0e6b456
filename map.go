package swiss

// Map is a SwissTable-backed associative container. It rejects nil
// interface-typed keys (spec §3: "the set variant allows nulls; the SWAR
// map variant rejects them with an error"). Map is not safe for concurrent
// use; see ShardedMap for that.
type Map[K comparable, V any] struct {
	t *table[K, V]
}

// NewMap constructs a Map pre-sized for at least initialCapacity entries.
// initialCapacity <= 0 is treated as the minimum table size. Returns
// ErrInvalidConfig if an option is out of range.
func NewMap[K comparable, V any](initialCapacity int, opts ...Option[K, V]) (*Map[K, V], error) {
	t, err := newTable[K, V](initialCapacity, true, opts...)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{t: t}, nil
}

// Size returns the number of live entries.
func (m *Map[K, V]) Size() int { return int(m.t.live) }

// IsEmpty reports whether the map has no live entries.
func (m *Map[K, V]) IsEmpty() bool { return m.t.live == 0 }

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) (bool, error) {
	if err := m.t.checkKey(key); err != nil {
		return false, err
	}
	_, ok := m.t.get(key)
	return ok, nil
}

// Get returns the value stored for key, if present.
func (m *Map[K, V]) Get(key K) (V, bool, error) {
	if err := m.t.checkKey(key); err != nil {
		var zero V
		return zero, false, err
	}
	v, ok := m.t.get(key)
	return v, ok, nil
}

// Put inserts or overwrites key's value and returns the previous value, if
// any.
func (m *Map[K, V]) Put(key K, value V) (V, bool, error) {
	if err := m.t.checkKey(key); err != nil {
		var zero V
		return zero, false, err
	}
	prev, had := m.t.put(key, value)
	return prev, had, nil
}

// Remove deletes key and returns its previous value, if present.
func (m *Map[K, V]) Remove(key K) (V, bool, error) {
	if err := m.t.checkKey(key); err != nil {
		var zero V
		return zero, false, err
	}
	prev, had := m.t.remove(key)
	return prev, had, nil
}

// PutAll inserts or overwrites every entry of entries. Pre-sizes the table
// conservatively per spec §4.3 before inserting; see SPEC_FULL.md's note on
// the pure-overlap over-estimation this can cause.
func (m *Map[K, V]) PutAll(entries map[K]V) error {
	if m.t.rejectNilKey {
		for k := range entries {
			if isNilKey(k) {
				return ErrNullKey
			}
		}
	}
	m.t.putAll(entries)
	return nil
}

// Clear removes every entry, retaining capacity.
func (m *Map[K, V]) Clear() { m.t.clear() }

// Stats reports the table's size/capacity/tombstone bookkeeping.
func (m *Map[K, V]) Stats() Stats { return m.t.stats() }

// Iterate returns an Iterator over the map's live entries in a randomized
// order fixed at construction time (spec §4.5).
func (m *Map[K, V]) Iterate() *Iterator[K, V] { return newIterator(m.t) }
