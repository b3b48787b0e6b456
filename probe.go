package swiss

// probeSeq produces the ordered sequence of group indices visited for a
// given H1 (spec §2's "Probe Sequence" component): triangular/quadratic
// stepping over groups, stride +1, +2, +3, ..., modulo the group count.
// groupMask is groupCount-1, and groupCount is always a power of two, so
// every probeSeq visits every group exactly once before repeating (spec
// §4.3's termination condition relies on this).
//
// Shape matches the real Go runtime's own probe sequence
// (internal/runtime/maps: makeProbeSeq/next), which implements the same
// SwissTable-derived algorithm.
type probeSeq struct {
	mask   uint64
	offset uint64
	step   uint64
}

// newProbeSeq starts a probe sequence at group h1&mask.
func newProbeSeq(h1, mask uint64) probeSeq {
	return probeSeq{mask: mask, offset: h1 & mask}
}

// next advances to the following group in the sequence.
func (s probeSeq) next() probeSeq {
	s.step++
	s.offset = (s.offset + s.step) & s.mask
	return s
}
