package swiss

import (
	"math/bits"
	"unsafe"
)

// nextPow2 returns the smallest power of two >= v, with nextPow2(0) == 1.
func nextPow2(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	return uint64(1) << bits.Len64(v-1)
}

// groupCountFor returns the smallest power-of-two group count whose slots
// can hold at least n entries before accounting for load factor (spec §4.3
// capacity discipline): ceil(n/groupSize), rounded up to a power of two,
// never less than 1.
func groupCountFor(n int) int {
	if n < 0 {
		n = 0
	}
	need := (n + groupSize - 1) / groupSize
	if need < 1 {
		need = 1
	}
	return int(nextPow2(uint64(need)))
}

// maxLoadFor computes max_load = clamp(floor(capacity*loadFactor), 1,
// capacity-1), spec §4.3.
func maxLoadFor(capacity uint64, loadFactor float64) uint64 {
	v := uint64(float64(capacity) * loadFactor)
	if v < 1 {
		v = 1
	}
	if capacity > 0 && v > capacity-1 {
		v = capacity - 1
	}
	return v
}

// CapacityFromSize estimates the number of slots (across K, V) that fit in
// a size-byte budget, rounded down to whole groups. Kept from the teacher's
// utils.go as a convenience for sizing a table to a memory target.
func CapacityFromSize[K comparable, V any](size uintptr) int {
	sizeOfGroup := unsafe.Sizeof(group[K, V]{})
	if sizeOfGroup == 0 {
		return 0
	}
	numGroups := size / sizeOfGroup
	return int(numGroups * groupSize)
}

// isNilKey reports whether key is a nil interface value — the idiomatic Go
// stand-in for "reference-typed null" used to enforce each variant's
// null-key policy (spec §3, §6). comparable already excludes types with no
// equality at all (slices, maps, funcs), so the only reference-typed keys
// that can reach this check are interfaces, pointers, and channels; of
// those, only a nil interface satisfies `any(key) == nil`, matching the
// common case spec.md's examples care about.
func isNilKey[K comparable](key K) bool {
	return any(key) == nil
}
