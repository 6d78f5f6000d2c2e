package performance

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cost-notes/harness"
)

/*
对比接口装箱（boxing）与错误返回的内存分配开销。

执行命令:

	go test -run '^$' -bench '^BenchmarkAlloc' -benchtime=3s -count=5 -benchmem .

关注指标:
  - allocs/op: 是否产生堆分配
  - B/op: 每次操作分配的字节数

预期结论:
 1. 小值（<=指针大小）装箱到interface{}时，Go运行时有优化，可能零分配。
 2. 大结构体装箱必然产生堆分配，分配大小等于结构体大小。
 3. 指针接收者通过接口调用不会额外拷贝值，值接收者会产生拷贝。
 4. 已经是指针的值赋给接口不需要额外分配。
 5. 返回哨兵错误不分配；fmt.Errorf 包装每次都分配，错误分支越多差距越大。
*/

func BenchmarkAllocNoBoxing(b *testing.B) {
	s := SmallValue{X: 42}
	for b.Loop() {
		harness.Consume(harness.Observe(s).Value())
	}
}

func BenchmarkAllocValueReceiverLarge(b *testing.B) {
	l := LargeValue{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6, G: 7, H: 8}
	var iface Valuer = l
	for b.Loop() {
		harness.Consume(harness.Observe(iface).Value())
	}
}

func BenchmarkAllocPointerReceiverLarge(b *testing.B) {
	l := &LargeValue{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6, G: 7, H: 8}
	var iface PtrValuer = l
	for b.Loop() {
		harness.Consume(harness.Observe(iface).PtrValue())
	}
}

func BenchmarkAllocBoxing(b *testing.B) {
	harness.Run(b, BoxBenches())
}

func BenchmarkAllocErrorPath(b *testing.B) {
	harness.Run(b, ErrorBenches(ErrorSizes))
}

func TestBoxingAllocations(t *testing.T) {
	restore, err := harness.SetBenchTime("100x")
	require.NoError(t, err)
	t.Cleanup(restore)

	got := map[string]int64{}
	for _, bench := range BoxBenches() {
		got[bench.Cell.Variant] = testing.Benchmark(bench.Fn).AllocsPerOp()
	}
	assert.LessOrEqual(t, got["small-value"], int64(1))
	assert.Equal(t, int64(1), got["large-value"])
	assert.Equal(t, int64(1), got["payload-value"])
	assert.Zero(t, got["payload-pointer"])
}

func TestLookupsAgree(t *testing.T) {
	for _, v := range ErrorVariants {
		sum, misses := SumLookups(lookupOf(v), 10)
		assert.Equal(t, 0+2+4+6+8, sum, v.String())
		assert.Equal(t, 5, misses, v.String())
	}
	assert.Nil(t, lookupOf("panic"))

	_, err := LookupTyped(3)
	var nf NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 3, nf.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = LookupWrapped(5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "user 5: not found")
}

func TestSentinelErrorsDoNotAllocate(t *testing.T) {
	allocs := testing.AllocsPerRun(20, func() {
		sum, misses := SumLookups(LookupSentinel, harness.Observe(1000))
		harness.Consume(sum + misses)
	})
	assert.Zero(t, allocs)

	wrapped := testing.AllocsPerRun(5, func() {
		sum, misses := SumLookups(LookupWrapped, harness.Observe(1000))
		harness.Consume(sum + misses)
	})
	assert.GreaterOrEqual(t, wrapped, float64(500))
}
