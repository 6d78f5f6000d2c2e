package move

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cost-notes/harness"
)

/*
交出一块已经填好的存储的成本，存储跨迭代复用。

执行命令:

	go test -run '^$' -bench '^BenchmarkMove' -benchtime=3s -count=5 -benchmem .

预期结论:
 1. owned_move 与 box_move 的 forced-heap 单元 allocs/op 都是 0，ns/elem 只剩填充本身。
 2. box_move 的 natural 单元在 N <= C 时每次分配并拷贝，N > C 时和 forced-heap 接近。
 3. 交出 Vec 指针与交出切片头部的差别在 N 较大时可以忽略。
*/

func BenchmarkMove(b *testing.B) {
	harness.Run(b, Benches(DefaultSizes))
}

func withBenchtime(t *testing.T, v string) {
	t.Helper()
	restore, err := harness.SetBenchTime(v)
	require.NoError(t, err)
	t.Cleanup(restore)
}

func TestVariantNames(t *testing.T) {
	assert.Equal(t, "slice-move", Variants[0].String())
	assert.Equal(t, "smallvec128-box-forced-heap", Variant{harness.SmallVec, true, harness.ForcedHeap}.String())
	assert.Equal(t, "tinyvec100-box-natural", Variant{harness.TinyVec, true, harness.Natural}.String())
}

func TestMatrixShape(t *testing.T) {
	sizes := harness.MustSizes(10, 1000)
	benches := Benches(sizes)
	require.Len(t, benches, len(Variants)*len(sizes))
	assert.Equal(t, "owned_move/N=10/slice-move", benches[0].Cell.Label())
	assert.Equal(t, "box_move/N=10/slice-box", benches[2*3].Cell.Label())
}

// 形式 A 的单元在计时区内不应出现任何分配
func TestRecycleFormIsAllocationFree(t *testing.T) {
	withBenchtime(t, "100x")
	for _, n := range harness.MustSizes(10, 100, 129, 1000) {
		for _, v := range Variants {
			if v.Boxed && v.Kind.Hybrid() && v.Mode == harness.Natural {
				continue
			}
			r := testing.Benchmark(Build(v, n))
			require.Positive(t, r.N, "%s n=%d", v, n)
			assert.Zero(t, r.AllocsPerOp(), "%s n=%d", v, n)
		}
	}
}

// 内联状态下装箱必须拷贝到堆上
func TestNaturalBoxAllocatesWhenInline(t *testing.T) {
	allocs := testing.AllocsPerRun(20, func() {
		harness.Consume(NaturalBox[[128]uint32](harness.Observe(100)))
	})
	assert.GreaterOrEqual(t, allocs, float64(1))

	out := NaturalBox[[100]uint32](50)
	assert.Len(t, out, 50)
	assert.Equal(t, len(out), cap(out))
	assert.Equal(t, uint32(49), out[49])
}

func TestSliceRepoHandsOverFilledStorage(t *testing.T) {
	repo := NewSliceRepo(64)
	s := repo.FetchMove()
	require.Len(t, s, 64)
	assert.Equal(t, uint32(63), s[63])
	assert.Panics(t, func() { repo.FetchMove() })
	repo.Recycle(s)

	bx := repo.FetchBox()
	assert.Equal(t, len(bx), cap(bx))
	repo.Recycle(bx)
}

func TestVecRepoKeepsMode(t *testing.T) {
	inline := NewVecRepo[[128]uint32](100)
	v := inline.FetchMove()
	assert.False(t, v.Spilled())
	assert.Equal(t, 100, v.Len())
	inline.Recycle(v)

	spilled := NewVecRepo[[128]uint32](1000)
	v = spilled.FetchMove()
	assert.True(t, v.Spilled())
	assert.Equal(t, 1000, v.Cap())
	spilled.Recycle(v)
}

func TestForcedHeapRepoIsZeroCopy(t *testing.T) {
	repo := NewForcedHeapRepo[[100]uint32](10)
	first := repo.FetchBox()
	require.Len(t, first, 10)
	p := &first[0]
	repo.Recycle(first)

	// buf/spare 交替交出，第三次又回到第一块
	repo.Recycle(repo.FetchBox())
	third := repo.FetchBox()
	assert.Same(t, p, &third[0])
	repo.Recycle(third)
}
