package swiss

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShardedMap_Basic(t *testing.T) {
	m, err := NewShardedMap[string, int](64, nil)
	require.NoError(t, err)

	prev, had, err := m.Put("foo", 42)
	require.NoError(t, err)
	require.False(t, had)
	require.Equal(t, 0, prev)

	v, ok, err := m.Get("foo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 42, v)

	prev, had, err = m.Put("foo", 100)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, 42, prev)

	prev, had, err = m.Remove("foo")
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, 100, prev)

	_, ok, err = m.Get("foo")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestShardedMap_RejectsNilKey(t *testing.T) {
	m, err := NewShardedMap[any, int](16, nil)
	require.NoError(t, err)

	_, _, err = m.Put(nil, 1)
	require.ErrorIs(t, err, ErrNullKey)
}

func TestShardedMap_SizeTracksPutsAndRemoves(t *testing.T) {
	m, err := NewShardedMap[int, int](64, nil)
	require.NoError(t, err)

	require.True(t, m.IsEmpty())

	for i := range 200 {
		_, _, err := m.Put(i, i)
		require.NoError(t, err)
	}
	require.Equal(t, 200, m.Size())

	for i := 0; i < 100; i++ {
		_, had, err := m.Remove(i)
		require.NoError(t, err)
		require.True(t, had)
	}
	require.Equal(t, 100, m.Size())
}

func TestShardedMap_PutAllBucketsAcrossShards(t *testing.T) {
	m, err := NewShardedMap[int, int](64, []ShardOption[int, int]{WithShardCount[int, int](8)})
	require.NoError(t, err)

	entries := make(map[int]int, 500)
	for i := range 500 {
		entries[i] = i * 2
	}
	require.NoError(t, m.PutAll(entries))

	require.Equal(t, 500, m.Size())
	for k, v := range entries {
		got, ok, err := m.Get(k)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}

func TestShardedMap_ClearResetsAllShards(t *testing.T) {
	m, err := NewShardedMap[int, int](64, nil)
	require.NoError(t, err)

	for i := range 50 {
		m.Put(i, i)
	}
	m.Clear()

	require.True(t, m.IsEmpty())
	for i := range 50 {
		_, ok, _ := m.Get(i)
		require.False(t, ok)
	}
}

func TestShardedMap_ConcurrentPutsAndGets(t *testing.T) {
	m, err := NewShardedMap[int, int](1024, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := range 200 {
				key := base*200 + i
				m.Put(key, key*2)
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 1600, m.Size())

	var readers sync.WaitGroup
	for w := range 8 {
		readers.Add(1)
		go func(base int) {
			defer readers.Done()
			for i := range 200 {
				key := base*200 + i
				v, ok, err := m.Get(key)
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, key*2, v)
			}
		}(w)
	}
	readers.Wait()
}

func TestShardedMap_Iterate(t *testing.T) {
	m, err := NewShardedMap[int, int](64, nil)
	require.NoError(t, err)

	want := map[int]int{1: 10, 2: 20, 3: 30}
	for k, v := range want {
		m.Put(k, v)
	}

	got := make(map[int]int)
	it := m.Iterate()
	for it.Next() {
		got[it.Key()] = it.Value()
	}
	require.Equal(t, want, got)
}

func TestShardedMap_IterateRemove(t *testing.T) {
	m, err := NewShardedMap[int, int](64, nil)
	require.NoError(t, err)

	for i := range 10 {
		m.Put(i, i)
	}

	it := m.Iterate()
	for it.Next() {
		if it.Key()%2 == 0 {
			require.NoError(t, it.Remove())
		}
	}

	require.Equal(t, 5, m.Size())
	for i := range 10 {
		_, ok, _ := m.Get(i)
		require.Equal(t, i%2 != 0, ok)
	}
}

func TestShardedMap_ShardCountRoundsUpToPowerOfTwo(t *testing.T) {
	m, err := NewShardedMap[int, int](64, []ShardOption[int, int]{WithShardCount[int, int](10)})
	require.NoError(t, err)

	require.Len(t, m.shards, 16)
}

// A shard count whose log2 exceeds 64-7=57 would consult bits that overlap
// H2's low-7-bit fingerprint region (spec §6/§7); the constructor must
// reject it rather than silently rounding it up. A shard count at or under
// the boundary is exercised by every other NewShardedMap test in this file
// (none of which could actually allocate a 2^57-element shard slice, so the
// boundary-accepting case isn't separately asserted here).
func TestShardedMap_RejectsShardCountTooLargeToStayDisjointFromH2(t *testing.T) {
	_, err := NewShardedMap[int, int](64, []ShardOption[int, int]{WithShardCount[int, int](1 << 58)})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
