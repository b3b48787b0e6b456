package swiss

// Set is a SwissTable-backed set. Unlike Map, it accepts nil interface-typed
// elements (spec §3: "the set variant allows nulls"). Set is not safe for
// concurrent use.
type Set[K comparable] struct {
	t *table[K, struct{}]
}

// NewSet constructs a Set pre-sized for at least initialCapacity elements.
func NewSet[K comparable](initialCapacity int, opts ...Option[K, struct{}]) (*Set[K], error) {
	t, err := newTable[K, struct{}](initialCapacity, false, opts...)
	if err != nil {
		return nil, err
	}
	return &Set[K]{t: t}, nil
}

// Size returns the number of elements.
func (s *Set[K]) Size() int { return int(s.t.live) }

// IsEmpty reports whether the set has no elements.
func (s *Set[K]) IsEmpty() bool { return s.t.live == 0 }

// Contains reports whether key is a member.
func (s *Set[K]) Contains(key K) bool {
	_, ok := s.t.get(key)
	return ok
}

// Add inserts key and reports whether it was new.
func (s *Set[K]) Add(key K) bool {
	_, had := s.t.put(key, struct{}{})
	return !had
}

// Remove deletes key and reports whether it was present.
func (s *Set[K]) Remove(key K) bool {
	_, had := s.t.remove(key)
	return had
}

// AddAll inserts every element of keys.
func (s *Set[K]) AddAll(keys []K) {
	if len(keys) == 0 {
		return
	}
	entries := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		entries[k] = struct{}{}
	}
	s.t.putAll(entries)
}

// Clear removes every element, retaining capacity.
func (s *Set[K]) Clear() { s.t.clear() }

// Stats reports the table's size/capacity/tombstone bookkeeping.
func (s *Set[K]) Stats() Stats { return s.t.stats() }

// Iterate returns an Iterator over the set's elements in a randomized order
// fixed at construction time (spec §4.5). Key() yields each element;
// Value() is always the zero struct{}{}.
func (s *Set[K]) Iterate() *Iterator[K, struct{}] { return newIterator(s.t) }
