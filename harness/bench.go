package harness

import (
	"testing"
)

// Harness 计时器的最小接口，*testing.B 和 Collector 都满足
type Harness interface {
	Run(name string, f func(b *testing.B)) bool
}

// Bench 一个已经展开的矩阵单元及其被测闭包
type Bench struct {
	Cell Cell
	Fn   func(b *testing.B)
}

// BatchSize Batched 每批预先构造的输入个数
const BatchSize = 64

// Plain 构造本身就是被测对象（比如 make-and-fill）时使用: 整个 fn 都在计时区内
func Plain(fn func()) func(b *testing.B) {
	return func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			fn()
		}
	}
}

// Recycle 形式 A: 预分配一次，循环内清空并重新填充。
//
// buf 必须在返回的闭包之外提前分配好；每次迭代 Fetch -> consume -> Recycle，
// 只要规模不变、容量足够，计时区内不应出现任何分配。
func Recycle[S any](buf *Buffer[S], fill func(S) S, consume func(S) S) func(b *testing.B) {
	return func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			s := buf.Fetch(fill)
			buf.Recycle(consume(Observe(s)))
		}
	}
}

// Batched 形式 B: setup 不计时，measured 计时。
//
// 每批先停表调用 setup 造 BatchSize 个新输入，再开表逐个交给 measured。
// 交出去的槽位立即清零，harness 不再持有输入的任何引用，measured 拿到的就是唯一所有者。
// measured 的返回值经过 Consume，不会被当作死代码。
func Batched[In, Out any](setup func() In, measured func(In) Out) func(b *testing.B) {
	return func(b *testing.B) {
		b.ReportAllocs()
		batch := make([]In, BatchSize)
		var zero In
		b.ResetTimer()
		for done := 0; done < b.N; {
			k := min(BatchSize, b.N-done)
			b.StopTimer()
			for i := range k {
				batch[i] = setup()
			}
			b.StartTimer()
			for i := range k {
				in := batch[i]
				batch[i] = zero
				Consume(measured(Observe(in)))
			}
			done += k
		}
	}
}

// Run 按顺序把每个单元注册到计时器，并按单元的规模上报吞吐
func Run(h Harness, benches []Bench) {
	for _, bench := range benches {
		cell, fn := bench.Cell, bench.Fn
		h.Run(cell.Label(), func(b *testing.B) {
			if cell.Unit == UnitBytes && cell.Size > 0 {
				b.SetBytes(int64(cell.Size))
			}
			fn(b)
			reportPerElement(b, cell)
		})
	}
}

// reportPerElement 把每次操作的耗时按规模摊到单个元素上，便于跨规模比较
func reportPerElement(b *testing.B, cell Cell) {
	if cell.Unit != UnitElements || cell.Size <= 0 || b.N == 0 {
		return
	}
	per := float64(b.Elapsed().Nanoseconds()) / float64(b.N) / float64(cell.Size)
	b.ReportMetric(per, "ns/elem")
}
