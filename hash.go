package swiss

import (
	"github.com/dolthub/maphash"
)

// HashFunc computes a 64-bit hash for a key. Implementations need not be
// cryptographically strong; they must only be deterministic for equal keys
// within the lifetime of a single table.
type HashFunc[K comparable] func(K) uint64

// defaultHashFunc builds the default hasher for K, backed by
// dolthub/maphash's generic wrapper around the runtime's built-in hashing
// for comparable types. A fresh seed is drawn per table, matching the
// teacher's per-table maphash.Seed.
func defaultHashFunc[K comparable]() HashFunc[K] {
	h := maphash.NewHasher[K]()
	return h.Hash
}

// smear applies a 64-bit-widened version of spec §4.1's mixing step to
// improve the entropy of the low bits of h before they are split into H1
// and H2. The source models a 32-bit hash and mixes with a single
// right-shift-16 fold; widened here to fold the upper 32 bits down first,
// then repeat the same shift-16 fold, since our hash inputs are native
// 64-bit (see SPEC_FULL.md §4).
func smear(h uint64) uint64 {
	h ^= h >> 32
	h ^= h >> 16
	return h
}

// splitHash separates a smeared hash into H1 (group selector, everything
// above the low 7 bits) and H2 (7-bit fingerprint, top bit always clear so
// it never collides with the EMPTY/DELETED sentinels).
func splitHash(h uint64) (h1 uint64, h2 uint8) {
	m := smear(h)
	return m >> 7, uint8(m & 0x7f)
}
