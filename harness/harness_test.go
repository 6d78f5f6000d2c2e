package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withBenchtime 让 testing.Benchmark 跑固定次数，避免单测被拖慢
func withBenchtime(t *testing.T, v string) {
	t.Helper()
	restore, err := SetBenchTime(v)
	require.NoError(t, err)
	t.Cleanup(restore)
}

func TestObserveIsIdentity(t *testing.T) {
	assert.Equal(t, 42, Observe(42))
	assert.Equal(t, "payload", Observe("payload"))

	s := []uint32{1, 2, 3}
	got := Observe(s)
	assert.Equal(t, s, got)
	assert.Same(t, &s[0], &got[0])

	m := map[string]int{"k": 1}
	assert.Equal(t, m, Observe(m))

	type pair struct{ a, b int64 }
	assert.Equal(t, pair{1, 2}, Observe(pair{1, 2}))
}

func TestSizes(t *testing.T) {
	got, err := Sizes(0, 10, 128)
	require.NoError(t, err)
	assert.Equal(t, []SizeClass{0, 10, 128}, got)

	_, err = Sizes(1, -1)
	assert.ErrorIs(t, err, ErrNegativeSize)

	assert.Panics(t, func() { MustSizes(-5) })
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStrategy("teleport")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Equal(t, "Strategy(99)", Strategy(99).String())
}

func TestContainerKind(t *testing.T) {
	tests := []struct {
		kind     ContainerKind
		inline   int
		n        SizeClass
		spills   bool
		expected int
	}{
		{Slice, 0, 0, false, 0},
		{Slice, 0, 10, true, 1},
		{SmallVec, 128, 128, false, 0},
		{SmallVec, 128, 129, true, 1},
		{TinyVec, 100, 100, false, 0},
		{TinyVec, 100, 101, true, 1},
		{TinyVec8, 8, 0, false, 0},
		{TinyVec8, 8, 9, true, 1},
		{Map, 0, 10, true, -1},
		{SmallMap, 128, 64, false, 0},
		{SmallMap, 128, 1000, true, -1},
		{ArrayMap, 128, 128, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.inline, tt.kind.InlineCap())
			assert.Equal(t, tt.inline, tt.kind.SpillThreshold())
			assert.Equal(t, tt.spills, tt.kind.Spills(tt.n))
			assert.Equal(t, tt.expected, tt.kind.ExpectedAllocs(tt.n))
		})
	}
	assert.True(t, SmallVec.Hybrid())
	assert.False(t, Slice.Hybrid())
	assert.False(t, ArrayMap.Hybrid())
}

func TestMaxGrowAllocs(t *testing.T) {
	assert.Zero(t, SmallVec.MaxGrowAllocs(128))
	assert.Zero(t, Slice.MaxGrowAllocs(0))
	assert.Equal(t, 1, Slice.MaxGrowAllocs(1))

	prev := 0
	for _, n := range []SizeClass{1, 10, 100, 1000, 10000, 1000000} {
		got := Slice.MaxGrowAllocs(n)
		assert.GreaterOrEqual(t, got, prev)
		assert.Less(t, got, 64, "growth should stay logarithmic")
		prev = got
	}
}

func TestExpandOrderAndLabels(t *testing.T) {
	variants := []Variant{"slice", "smallvec128"}
	sizes := MustSizes(10, 100)
	calls := 0
	benches := Expand("fill", UnitElements, variants, sizes, func(v Variant, n SizeClass) func(b *testing.B) {
		calls++
		return func(b *testing.B) {}
	})
	require.Len(t, benches, 4)
	assert.Equal(t, 4, calls)

	want := []string{
		"fill/N=10/slice",
		"fill/N=10/smallvec128",
		"fill/N=100/slice",
		"fill/N=100/smallvec128",
	}
	seen := map[string]bool{}
	for i, b := range benches {
		assert.Equal(t, want[i], b.Cell.Label())
		assert.Equal(t, int64(b.Cell.Size), b.Cell.Throughput())
		assert.False(t, seen[b.Cell.Label()])
		seen[b.Cell.Label()] = true
	}

	again := Expand("fill", UnitElements, variants, sizes, func(Variant, SizeClass) func(b *testing.B) {
		return func(b *testing.B) {}
	})
	assert.Equal(t, Cells(benches), Cells(again))
}

func TestExpandSkipsNil(t *testing.T) {
	benches := Expand("map", UnitElements, []ContainerKind{Map, ArrayMap}, MustSizes(64, 1000),
		func(k ContainerKind, n SizeClass) func(b *testing.B) {
			if k.Fixed() && int(n) > k.InlineCap() {
				return nil
			}
			return func(b *testing.B) {}
		})
	var labels []string
	for _, b := range Cells(benches) {
		labels = append(labels, b.Label())
	}
	assert.Equal(t, []string{"map/N=64/map", "map/N=64/arraymap128", "map/N=1000/map"}, labels)
}

func TestCellWithoutUnit(t *testing.T) {
	c := Cell{Variant: "dispatch", Size: 5}
	assert.Equal(t, "N=5/dispatch", c.Label())
	assert.Zero(t, c.Throughput())
}

func fillSeq(n int) func([]uint32) []uint32 {
	return func(s []uint32) []uint32 {
		for i := range n {
			s = append(s, Observe(uint32(i)))
		}
		return s
	}
}

func TestBufferCapacityNeverShrinks(t *testing.T) {
	const n = 1000
	buf := NewSliceBuffer[uint32](n)
	fill := fillSeq(n)

	s := buf.Fetch(fill)
	require.Len(t, s, n)
	buf.Recycle(s)
	warm := buf.HighWater()
	require.GreaterOrEqual(t, warm, n)

	for range 50 {
		s := buf.Fetch(fill)
		assert.Len(t, s, n)
		assert.Equal(t, uint32(n-1), s[n-1])
		assert.GreaterOrEqual(t, cap(s), warm)
		buf.Recycle(s)
		assert.GreaterOrEqual(t, buf.HighWater(), warm)
		warm = buf.HighWater()
	}
}

func TestBufferNoAllocsAfterWarmup(t *testing.T) {
	const n = 256
	buf := NewSliceBuffer[uint32](n)
	fill := fillSeq(n)
	allocs := testing.AllocsPerRun(100, func() {
		s := buf.Fetch(fill)
		Consume(s[len(s)-1])
		buf.Recycle(s)
	})
	assert.Zero(t, allocs)
}

func TestBufferExclusiveOwnership(t *testing.T) {
	buf := NewSliceBuffer[uint32](8)
	fill := fillSeq(8)

	assert.Panics(t, func() { buf.Recycle(nil) }, "recycle before fetch")

	s := buf.Fetch(fill)
	assert.True(t, buf.Held())
	assert.Panics(t, func() { buf.Fetch(fill) }, "second holder")
	buf.Recycle(s)
	assert.False(t, buf.Held())

	_ = buf.Fetch(fill)
	assert.Panics(t, func() { buf.Recycle(make([]uint32, 0, 1)) }, "capacity released")
}

func TestBufferSwapsTwoStores(t *testing.T) {
	buf := NewSliceBuffer[uint32](4)
	fill := fillSeq(4)

	a := buf.Fetch(fill)
	buf.Recycle(a)
	b := buf.Fetch(fill)
	assert.NotSame(t, &a[:1][0], &b[:1][0], "consecutive fetches alternate between buf and spare")
	buf.Recycle(b)
	c := buf.Fetch(fill)
	assert.Same(t, &a[:1][0], &c[:1][0])
	buf.Recycle(c)
}

func TestBufferStoresOfDifferentCapacity(t *testing.T) {
	buf := NewBuffer(make([]uint32, 0, 4), make([]uint32, 0, 16), SliceStore[uint32]())
	fill := fillSeq(4)

	for range 4 {
		s := buf.Fetch(fill)
		assert.NotPanics(t, func() { buf.Recycle(s) }, "cap %d", cap(s))
	}
	assert.Equal(t, 16, buf.HighWater())

	// 每块存储只和自己的记录比较
	small := buf.Fetch(fill)
	require.Equal(t, 4, cap(small))
	assert.Panics(t, func() { buf.Recycle(small[:0:2]) })
}

func TestRecycleFormHasNoTimedAllocs(t *testing.T) {
	withBenchtime(t, "200x")
	buf := NewSliceBuffer[uint32](512)
	r := testing.Benchmark(Recycle(buf, fillSeq(512), func(s []uint32) []uint32 {
		Consume(len(s))
		return s
	}))
	require.Positive(t, r.N)
	assert.Zero(t, r.AllocsPerOp())
	assert.False(t, buf.Held())
}

func TestBatchedKeepsSetupOutOfTimedRegion(t *testing.T) {
	withBenchtime(t, "300x")
	setups, measured := 0, 0
	r := testing.Benchmark(Batched(
		func() []byte {
			setups++
			return make([]byte, 4096)
		},
		func(in []byte) int {
			measured++
			return len(in)
		},
	))
	require.Positive(t, r.N)
	assert.Equal(t, setups, measured, "every input is produced once and consumed once")
	assert.Zero(t, r.AllocsPerOp(), "setup allocations must not leak into the timed region")
}

func TestPlainCountsConstruction(t *testing.T) {
	withBenchtime(t, "100x")
	r := testing.Benchmark(Plain(func() {
		s := make([]uint32, 0, Observe(64))
		Consume(s)
	}))
	require.Positive(t, r.N)
	assert.Equal(t, int64(1), r.AllocsPerOp())
}

func TestCollector(t *testing.T) {
	withBenchtime(t, "50x")
	var seen []string
	c := &Collector{OnResult: func(r Result) { seen = append(seen, r.Name) }}
	benches := Expand("sum", UnitElements, []Variant{"loop"}, MustSizes(100), func(Variant, SizeClass) func(b *testing.B) {
		return Plain(func() {
			acc := 0
			for i := range Observe(100) {
				acc += i
			}
			Consume(acc)
		})
	})
	Run(c, benches)

	res := c.Results()
	require.Len(t, res, 1)
	assert.Equal(t, "sum/N=100/loop", res[0].Name)
	assert.Equal(t, []string{"sum/N=100/loop"}, seen)
	assert.Positive(t, res[0].N)
	assert.Positive(t, res[0].NsPerElem)
}
