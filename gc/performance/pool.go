package performance

import (
	"runtime"
	"sync"
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

// 三种拿到一块 N 字节缓冲区的方式:
//   - fresh: 每次 make，分配交给 GC 回收
//   - pool: sync.Pool 复用，池里放 *[]byte，Put 时不会因为装箱再分配
//   - recycle: harness.Buffer 独占的 buf/spare 交替复用
// 三者都要把 N 个字节写一遍，差别只在存储从哪里来。

func fillBytes(s []byte, n int) []byte {
	for i := range n {
		s = append(s, fabricate.Byte(harness.Observe(i)))
	}
	return s
}

//go:noinline
func Fresh(n int) []byte {
	return fillBytes(make([]byte, 0, n), n)
}

// BytePool 按固定大小复用缓冲区
type BytePool struct {
	n    int
	pool sync.Pool
}

func NewBytePool(n int) *BytePool {
	p := &BytePool{n: n}
	p.pool.New = func() any {
		s := make([]byte, 0, n)
		return &s
	}
	return p
}

// Get 取出一块已填充的缓冲区，用完交给 Put
//
//go:noinline
func (p *BytePool) Get() *[]byte {
	sp := p.pool.Get().(*[]byte)
	*sp = fillBytes((*sp)[:0], p.n)
	return sp
}

func (p *BytePool) Put(sp *[]byte) {
	p.pool.Put(sp)
}

var PoolVariants = []harness.Variant{"fresh", "sync-pool", "recycle"}

var PoolSizes = harness.MustSizes(64, 4096, 65536)

func poolBench(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
	switch v {
	case "fresh":
		return harness.Plain(func() { harness.Consume(Fresh(harness.Observe(n.Int()))) })
	case "sync-pool":
		p := NewBytePool(n.Int())
		return harness.Plain(func() {
			sp := p.Get()
			harness.Consume(len(*sp))
			p.Put(sp)
		})
	case "recycle":
		buf := harness.NewSliceBuffer[byte](n)
		return harness.Recycle(buf,
			func(s []byte) []byte { return fillBytes(s, n.Int()) },
			func(s []byte) []byte { harness.Consume(len(s)); return s })
	}
	return nil
}

// PoolBenches 吞吐按字节计
func PoolBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("buffer_source", harness.UnitBytes, PoolVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			fn := poolBench(v, n)
			if fn == nil {
				return nil
			}
			return withGCCount(fn)
		})
}

// withGCCount 额外上报每次操作触发的 GC 次数
func withGCCount(fn func(b *testing.B)) func(b *testing.B) {
	return func(b *testing.B) {
		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		fn(b)
		runtime.ReadMemStats(&after)
		if b.N > 0 {
			b.ReportMetric(float64(after.NumGC-before.NumGC)/float64(b.N), "gc/op")
		}
	}
}
