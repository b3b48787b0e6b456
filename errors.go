package swiss

import "errors"

// Error kinds from spec §7. ErrProbeCycleExhausted is not meant to be
// recovered from: it indicates the Rehash Controller failed to keep the
// table below max_load, which is an invariant violation, not a reportable
// runtime condition. It is raised as a panic (see table.go), not returned.
var (
	// ErrInvalidConfig is returned by a constructor when an option value is
	// out of its documented range (load factor outside (0, 1), non-positive
	// or too-large shard count).
	ErrInvalidConfig = errors.New("swiss: invalid configuration")

	// ErrNullKey is returned by Map operations (and any other variant whose
	// policy rejects null keys) when the key is a nil interface value.
	ErrNullKey = errors.New("swiss: null key rejected")

	// ErrIteratorState is returned by Iterator.Remove when called before the
	// first Next, or twice in a row without an intervening Next.
	ErrIteratorState = errors.New("swiss: iterator in illegal state")

	// ErrConcurrentModification is reserved for a stateful iterator that
	// detects a mutation it did not itself perform. Spec §7 marks this
	// OPTIONAL for the single-threaded core and explicitly excludes it from
	// the sharded wrapper's snapshot iterator (which never observes live
	// mutation after its snapshot is taken). Neither iterator in this
	// package raises it today; it is kept as a named error so a future
	// stateful (non-snapshot) iterator can use it without an API break.
	ErrConcurrentModification = errors.New("swiss: concurrent modification detected")
)

// ErrProbeCycleExhausted signals that a probe walked every group without
// finding a match or an EMPTY slot. The Rehash Controller is designed to
// prevent this by growing before max_load is reached; reaching it means
// that invariant was violated elsewhere. See table.go's insert path. Named
// and exported per spec §7's five error kinds, even though it is raised via
// panic rather than returned (see the doc comment above).
var ErrProbeCycleExhausted = errors.New("swiss: probe cycle exhausted")
