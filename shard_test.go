package swiss

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShard_OptimisticGetMatchesLockedRead(t *testing.T) {
	s, err := newShard[int, int](16, true)
	require.NoError(t, err)

	s.withWrite(func(t *table[int, int]) {
		t.put(1, 100)
		t.put(2, 200)
	})

	v, ok := s.optimisticGet(1)
	require.True(t, ok)
	require.Equal(t, 100, v)

	_, ok = s.optimisticGet(3)
	require.False(t, ok)
}

func TestShard_WithWriteFlipsStampToEvenOnExit(t *testing.T) {
	s, err := newShard[int, int](16, true)
	require.NoError(t, err)

	require.Equal(t, uint64(0), s.stmp.Load())

	s.withWrite(func(t *table[int, int]) {
		t.put(1, 1)
		require.Equal(t, uint64(1), s.stmp.Load(), "stamp must be odd while a write is in flight")
	})

	require.Equal(t, uint64(2), s.stmp.Load())
}
