package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
屏障是否真的在起作用:

	go test -run '^$' -bench '^BenchmarkBarrier' .

BarrierOff 用传统的 b.N 循环、常量输入、结果丢弃，整个乘法会被折叠掉，
结果接近 0 ns/op；BarrierOn 只多了 Observe/Consume，测到的是一次真实的乘法加上屏障的固定开销。
*/

func BenchmarkBarrierOff(b *testing.B) {
	for i := 0; i < b.N; i++ {
		x := 3
		_ = x * x
	}
}

func BenchmarkBarrierOn(b *testing.B) {
	for i := 0; i < b.N; i++ {
		x := Observe(3)
		Consume(x * x)
	}
}

func TestBarrierIsLoadBearing(t *testing.T) {
	if testing.Short() {
		t.Skip("timing comparison")
	}
	withBenchtime(t, "5000000x")

	off := testing.Benchmark(BenchmarkBarrierOff)
	on := testing.Benchmark(BenchmarkBarrierOn)
	require.Equal(t, 5000000, on.N)
	// 去掉屏障后乘法被折叠，只剩空循环
	assert.GreaterOrEqual(t, on.NsPerOp(), off.NsPerOp())
	assert.Greater(t, on.T, off.T)
}

func TestSetBenchTime(t *testing.T) {
	restore, err := SetBenchTime("7x")
	require.NoError(t, err)
	r := testing.Benchmark(func(b *testing.B) {
		for b.Loop() {
			Consume(1)
		}
	})
	restore()
	assert.Equal(t, 7, r.N)

	_, err = SetBenchTime("fast")
	assert.Error(t, err)
}
