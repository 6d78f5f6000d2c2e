package smallmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cost-notes/harness"
)

type inline128 = [128]Entry[uint32, uint32]

func TestInsertGetAcrossSpill(t *testing.T) {
	for _, n := range []int{0, 5, 128, 129, 1000} {
		m := New[uint32, uint32, inline128]()
		for i := range n {
			require.True(t, m.Insert(uint32(i), uint32(i*7)))
		}
		assert.Equal(t, n, m.Len())
		assert.Equal(t, n > 128, m.Spilled(), "n=%d", n)
		for i := range n {
			v, ok := m.Get(uint32(i))
			require.True(t, ok)
			assert.Equal(t, uint32(i*7), v)
		}
		_, ok := m.Get(uint32(n + 1))
		assert.False(t, ok)
	}
}

func TestInsertOverwrites(t *testing.T) {
	m := New[string, int, [8]Entry[string, int]]()
	m.Insert("a", 1)
	m.Insert("a", 2)
	v, _ := m.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Len())
}

func TestFixedRejectsOverflow(t *testing.T) {
	m := NewFixed[uint32, uint32, [16]Entry[uint32, uint32]]()
	for i := range 16 {
		assert.True(t, m.Insert(uint32(i), 1))
	}
	assert.False(t, m.Insert(99, 1))
	assert.True(t, m.Insert(3, 2), "existing key can still be updated")
	assert.False(t, m.Spilled())
	assert.Equal(t, 16, m.Len())
}

func TestInlineFillDoesNotAllocate(t *testing.T) {
	kind := harness.SmallMap
	for _, n := range harness.MustSizes(0, 10, 64, 128) {
		allocs := testing.AllocsPerRun(50, func() {
			m := New[uint32, uint32, inline128]()
			for i := range harness.Observe(int(n)) {
				m.Insert(harness.Observe(uint32(i)), uint32(i))
			}
			harness.Consume(m.Len())
		})
		assert.Equal(t, float64(kind.ExpectedAllocs(n)), allocs, "n=%d", n)
	}
}

func TestClear(t *testing.T) {
	m := New[uint32, uint32, [8]Entry[uint32, uint32]]()
	for i := range 20 {
		m.Insert(uint32(i), 0)
	}
	require.True(t, m.Spilled())
	m.Clear()
	assert.Zero(t, m.Len())
	assert.True(t, m.Spilled())

	f := NewFixed[uint32, uint32, [8]Entry[uint32, uint32]]()
	f.Insert(1, 1)
	f.Clear()
	assert.Zero(t, f.Len())
	_, ok := f.Get(1)
	assert.False(t, ok)
}
