package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

/*
运行:
go test -run '^$' -bench . -benchmem ./gc/performance/

预期结果:
  - buffer_source: fresh 每次 1 allocs/op，gc/op 随 N 增大；sync-pool 与 recycle 基本 0 allocs/op。
    sync.Pool 在两次 GC 之间可能被清空，偶尔仍会分配，recycle 则严格为 0。
  - record_layout: value-slice 1 allocs/op，pointer-slice N+1 allocs/op。
*/

func BenchmarkBufferSource(b *testing.B) {
	harness.Run(b, PoolBenches(PoolSizes))
}

func BenchmarkRecordLayout(b *testing.B) {
	harness.Run(b, LayoutBenches(LayoutSizes))
}

func TestSourcesProduceSameBytes(t *testing.T) {
	want := fabricate.Bytes(300)
	assert.Equal(t, want, Fresh(300))

	p := NewBytePool(300)
	sp := p.Get()
	assert.Equal(t, want, *sp)
	p.Put(sp)
	sp = p.Get()
	assert.Equal(t, want, *sp, "reused buffer is refilled, not appended to")
	p.Put(sp)
}

func TestBufferSourceAllocations(t *testing.T) {
	restore, err := harness.SetBenchTime("100x")
	require.NoError(t, err)
	t.Cleanup(restore)

	got := map[string]int64{}
	for _, bench := range PoolBenches(harness.MustSizes(4096)) {
		r := testing.Benchmark(bench.Fn)
		require.Positive(t, r.N)
		got[bench.Cell.Variant] = r.AllocsPerOp()
	}
	assert.Equal(t, int64(1), got["fresh"])
	assert.Zero(t, got["recycle"])
	assert.LessOrEqual(t, got["sync-pool"], got["fresh"])
}

func TestRecordLayoutAllocations(t *testing.T) {
	const n = 100
	value := testing.AllocsPerRun(10, func() { harness.Consume(newRecordValueSlice(harness.Observe(n))) })
	pointer := testing.AllocsPerRun(10, func() { harness.Consume(newRecordPointerSlice(harness.Observe(n))) })
	assert.Equal(t, float64(1), value)
	assert.Equal(t, float64(n+1), pointer)

	assert.Len(t, LayoutBenches(LayoutSizes), len(LayoutVariants)*len(LayoutSizes))
}
