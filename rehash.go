package swiss

// maybeRehash is the Rehash Controller's trigger evaluation (spec §4.4),
// run by put before each insert and by remove after each successful erase;
// clear, putAll and Iterator.Remove do not call it. Over-load takes priority:
// growing already resets tombstones to zero as a side effect of rebuilding,
// so there's no need to separately check tombstone saturation in the same
// pass.
func (t *table[K, V]) maybeRehash() {
	if t.live+t.tombstones >= t.maxLoad {
		t.rehash(true)
		return
	}
	if t.tombstones > t.live/2 {
		t.rehash(false)
	}
}

// rehash rebuilds the table, either growing capacity (doubling the group
// count) or rebuilding at the same capacity to purge tombstones (spec
// §4.4). Every live entry is recomputed against the new group_mask and
// reinserted via the ordinary probe-and-place path (insertOrUpdate), which
// — since the new table starts with zero tombstones and zero duplicate
// keys — behaves exactly like the "fresh" probe spec describes: it only
// ever terminates on EMPTY, never DELETED.
func (t *table[K, V]) rehash(grow bool) {
	oldGroups := t.groups

	newGroupCount := len(oldGroups)
	if grow {
		// max(2*capacity, groupWidth), rounded up to the next power-of-two
		// group count (spec §4.4's Grow rule).
		newGroupCount = int(nextPow2(uint64(len(oldGroups)) * 2))
	}

	t.groups = make([]group[K, V], newGroupCount)
	for i := range t.groups {
		t.groups[i].ctrls = emptyCtrls
	}
	t.groupMask = uint64(newGroupCount) - 1
	t.capacity = uint64(newGroupCount) * groupSize
	t.maxLoad = maxLoadFor(t.capacity, t.loadFactor)
	t.tombstones = 0
	t.live = 0

	for i := range oldGroups {
		og := &oldGroups[i]
		word := og.ctrlWord()
		full := matchFull(word)
		for full != 0 {
			slot := full.first()
			t.insertOrUpdate(og.keys[slot], og.vals[slot])
			full = full.next()
		}
	}
}

// growTo repeatedly doubles capacity until max_load can accommodate
// minLive live entries. Used by putAll's conservative pre-sizing (spec
// §4.3's bulk insert).
func (t *table[K, V]) growTo(minLive uint64) {
	for t.maxLoad < minLive {
		t.rehash(true)
	}
}
