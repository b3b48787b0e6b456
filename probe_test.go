package swiss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProbeSeqVisitsEveryGroupExactlyOnce(t *testing.T) {
	for _, groupCount := range []uint64{1, 2, 4, 8, 16, 64} {
		mask := groupCount - 1
		for h1 := uint64(0); h1 < groupCount; h1++ {
			seen := make(map[uint64]bool, groupCount)
			seq := newProbeSeq(h1, mask)
			for i := uint64(0); i <= mask; i++ {
				require.False(t, seen[seq.offset], "groupCount=%d h1=%d revisited offset %d early", groupCount, h1, seq.offset)
				seen[seq.offset] = true
				seq = seq.next()
			}
			require.Len(t, seen, int(groupCount))
		}
	}
}

func TestProbeSeqStartsAtH1MaskedByGroupMask(t *testing.T) {
	seq := newProbeSeq(13, 7) // mask = 0b111
	require.Equal(t, uint64(13&7), seq.offset)
}
