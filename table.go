package swiss

// table is the Table Core (spec §2/§4.3): it owns the groups array plus the
// counters and threshold needed to decide, via the Rehash Controller
// (rehash.go), when a grow or same-capacity rebuild is due. It is
// single-owner — not safe for concurrent use on its own; all thread-safety
// lives one layer up, in the Sharded Concurrent Wrapper (shard.go).
type table[K comparable, V any] struct {
	groups []group[K, V]

	groupMask  uint64 // group_count - 1
	capacity   uint64 // group_count * groupSize
	live       uint64
	tombstones uint64
	maxLoad    uint64
	loadFactor float64

	hashFunc     HashFunc[K]
	rejectNilKey bool
}

// newTable builds a Table Core sized for at least initialCapacity entries
// (rounded up per spec §4.3's capacity discipline). rejectNilKey fixes the
// variant's null-key policy (spec §3: Map rejects, Set accepts).
func newTable[K comparable, V any](initialCapacity int, rejectNilKey bool, opts ...Option[K, V]) (*table[K, V], error) {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.hashFunc == nil {
		cfg.hashFunc = defaultHashFunc[K]()
	}

	numGroups := groupCountFor(initialCapacity)
	t := &table[K, V]{
		groups:       make([]group[K, V], numGroups),
		groupMask:    uint64(numGroups) - 1,
		capacity:     uint64(numGroups) * groupSize,
		loadFactor:   cfg.loadFactor,
		hashFunc:     cfg.hashFunc,
		rejectNilKey: rejectNilKey,
	}
	t.maxLoad = maxLoadFor(t.capacity, t.loadFactor)
	for i := range t.groups {
		t.groups[i].ctrls = emptyCtrls
	}
	return t, nil
}

// checkKey enforces the variant's null-key policy (spec §3, §6) at the
// entry point, as required.
func (t *table[K, V]) checkKey(key K) error {
	if t.rejectNilKey && isNilKey(key) {
		return ErrNullKey
	}
	return nil
}

// find implements spec §4.3's lookup algorithm: walk the probe sequence
// from H1, testing each group's fingerprint matches against the key, and
// stop at the first EMPTY slot (or after visiting every group once).
// Returns the absolute slot index (group*groupSize + in-group offset).
func (t *table[K, V]) find(key K) (uint64, bool) {
	if t.live == 0 {
		return 0, false
	}

	h1, h2 := splitHash(t.hashFunc(key))
	seq := newProbeSeq(h1, t.groupMask)

	for visited := uint64(0); visited <= t.groupMask; visited++ {
		g := &t.groups[seq.offset]
		word := g.ctrlWord()

		matches := matchFingerprint(word, h2)
		for matches != 0 {
			i := matches.first()
			if g.keys[i] == key {
				return seq.offset*groupSize + uint64(i), true
			}
			matches = matches.next()
		}

		if matchEmpty(word) != 0 {
			return 0, false
		}

		seq = seq.next()
	}

	return 0, false
}

// get returns the value stored for key, if present.
func (t *table[K, V]) get(key K) (V, bool) {
	idx, ok := t.find(key)
	if !ok {
		var zero V
		return zero, false
	}
	g := &t.groups[idx/groupSize]
	return g.vals[idx%groupSize], true
}

// put is spec §4.3's insert: check for growth first, then overwrite an
// existing key or claim the first tombstone/empty slot found along the
// probe sequence. Returns the previous value, if the key was already
// present.
func (t *table[K, V]) put(key K, value V) (V, bool) {
	t.maybeRehash()
	return t.insertOrUpdate(key, value)
}

// insertOrUpdate runs the probe-and-place loop without consulting the
// Rehash Controller; used both by put (which checks growth first) and by
// rehash's reinsertion pass (which runs against a freshly-sized table that
// needs no growth check mid-rebuild).
func (t *table[K, V]) insertOrUpdate(key K, value V) (V, bool) {
	h1, h2 := splitHash(t.hashFunc(key))
	seq := newProbeSeq(h1, t.groupMask)

	var (
		tombstoneGroup *group[K, V]
		tombstoneSlot  uintptr
		haveTombstone  bool
	)

	for visited := uint64(0); visited <= t.groupMask; visited++ {
		g := &t.groups[seq.offset]
		word := g.ctrlWord()

		matches := matchFingerprint(word, h2)
		for matches != 0 {
			i := matches.first()
			if g.keys[i] == key {
				prev := g.vals[i]
				g.vals[i] = value
				return prev, true
			}
			matches = matches.next()
		}

		if !haveTombstone {
			if ts := matchTombstone(word); ts != 0 {
				tombstoneGroup = g
				tombstoneSlot = ts.first()
				haveTombstone = true
			}
		}

		if empties := matchEmpty(word); empties != 0 {
			target, slot := g, empties.first()
			if haveTombstone {
				target, slot = tombstoneGroup, tombstoneSlot
				t.tombstones--
			}

			// Publication order is mandatory (spec §4.6): key/value cells
			// are written before the control byte is published as live, so
			// a racing optimistic reader never observes a fingerprint
			// pointing at an uninitialized slot.
			target.keys[slot] = key
			target.vals[slot] = value
			target.ctrls[slot] = h2

			t.live++
			var zero V
			return zero, false
		}

		seq = seq.next()
	}

	// The Rehash Controller grows before max_load is reached, so a probe
	// should never exhaust every group without finding EMPTY. Reaching
	// here means that invariant was violated.
	panic(ErrProbeCycleExhausted)
}

// eraseAt tears down the slot at absolute index idx: marks its control byte
// DELETED and clears the key/value cells (spec I4). Does not consult the
// Rehash Controller — callers that want post-delete rebuild checks call
// maybeRehash separately (remove does; the iterator's Remove deliberately
// does not, per spec §4.5).
func (t *table[K, V]) eraseAt(idx uint64) {
	g := &t.groups[idx/groupSize]
	slot := idx % groupSize

	g.ctrls[slot] = slotDeleted
	var zeroK K
	var zeroV V
	g.keys[slot] = zeroK
	g.vals[slot] = zeroV

	t.live--
	t.tombstones++
}

// remove is spec §4.3's erase: find, tear down, then let the Rehash
// Controller decide whether a same-capacity rebuild is due.
func (t *table[K, V]) remove(key K) (V, bool) {
	idx, ok := t.find(key)
	if !ok {
		var zero V
		return zero, false
	}

	g := &t.groups[idx/groupSize]
	prev := g.vals[idx%groupSize]
	t.eraseAt(idx)
	t.maybeRehash()

	return prev, true
}

// clear resets every slot to EMPTY and zeroes all counters, retaining
// capacity (spec §4.3).
func (t *table[K, V]) clear() {
	for i := range t.groups {
		t.groups[i].reset()
	}
	t.live = 0
	t.tombstones = 0
}

// putAll is spec §4.3's bulk insert: conservatively project the
// post-insertion size, pre-grow once if that projection would breach
// max_load, then insert every entry without further resize checks.
func (t *table[K, V]) putAll(entries map[K]V) {
	if len(entries) == 0 {
		return
	}

	var shrinkBySeen uint64
	if uint64(len(entries)) > t.tombstones {
		shrinkBySeen = uint64(len(entries)) - t.tombstones
	}
	projected := t.live + t.tombstones + shrinkBySeen

	if projected >= t.maxLoad {
		t.growTo(t.live + uint64(len(entries)))
	}

	for k, v := range entries {
		t.insertOrUpdate(k, v)
	}
}
