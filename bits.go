package swiss

import "math/bits"

const (
	bitsetLSB = 0x0101010101010101
	bitsetMSB = 0x8080808080808080
)

// bitset is a packed groupSize-bit mask over a group's control word: one bit
// per slot, carried as the slot's MSB (so the representation is 0x80 per set
// slot, 0x00 per clear slot, not a tightly packed 8-bit value). first/next
// walk it low-byte to high-byte, i.e. slot 0 to slot groupSize-1.
type bitset uint64

// first returns the in-group index of the lowest set slot. Only valid when
// b != 0.
func (b bitset) first() uintptr {
	return uintptr(bits.TrailingZeros64(uint64(b)) >> 3)
}

// next clears the lowest set slot, exposing the next one. Spec §4.2: since
// exactly one bit (the byte's MSB) is ever set per matched slot, clearing it
// is the ordinary "clear lowest set bit" trick, b & (b-1).
func (b bitset) next() bitset {
	return b & (b - 1)
}

// matchFingerprint returns a bitset of slots in group whose control byte
// equals h2. Broadcast h2 into every byte lane, XOR against the control
// word (equal bytes become zero), then detect zero bytes with the
// Abseil/Go-runtime haszero identity (v-LSB) &^ v & MSB, lifted verbatim
// from the pack's crn4/swiss group.match.
//
// The subtraction trick can return a spurious extra bit next to a genuine
// zero byte (a cross-byte borrow artifact) but never misses a genuine one
// — see DESIGN.md's Group Matcher entry for the derivation. That's why
// every caller of matchFingerprint (table.go's find/insertOrUpdate) treats
// a set bit as "check this slot's key", never as "this slot matches":
// a spurious bit costs one extra failed key comparison, nothing more.
func matchFingerprint(group uint64, h2 uint8) bitset {
	v := group ^ (bitsetLSB * uint64(h2))
	return bitset(((v - bitsetLSB) &^ v) & bitsetMSB)
}

// matchEmpty returns a bitset of EMPTY (0x80) slots in group. EMPTY has bit
// 1 clear, DELETED (0xFE) has bit 1 set; shifting bit 1 into the MSB lane
// and masking it out distinguishes the two among slots that already have
// their MSB set.
func matchEmpty(group uint64) bitset {
	return bitset((group &^ (group << 6)) & bitsetMSB)
}

// matchTombstone returns a bitset of DELETED (0xFE) slots in group.
func matchTombstone(group uint64) bitset {
	return matchEmptyOrDeleted(group) &^ matchEmpty(group)
}

// matchEmptyOrDeleted returns a bitset of slots that are either EMPTY or
// DELETED: both sentinels have their MSB set, and no fingerprint does.
func matchEmptyOrDeleted(group uint64) bitset {
	return bitset(group & bitsetMSB)
}

// matchFull returns a bitset of slots holding a live fingerprint: the
// complement of matchEmptyOrDeleted within the MSB lanes.
func matchFull(group uint64) bitset {
	return bitset(bitsetMSB &^ uint64(matchEmptyOrDeleted(group)))
}
