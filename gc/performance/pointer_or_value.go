package performance

import (
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

// 值切片只有一次分配，GC 扫描一块连续内存；
// 指针切片每个元素单独分配，分配次数和 GC 要追踪的对象数都随 N 线性增长。

//go:noinline
func newRecordValueSlice(n int) []fabricate.Small {
	s := make([]fabricate.Small, n)
	for i := range s {
		s[i] = fabricate.Small{A: int32(i)}
	}
	return s
}

//go:noinline
func newRecordPointerSlice(n int) []*fabricate.Small {
	s := make([]*fabricate.Small, n)
	for i := range s {
		s[i] = &fabricate.Small{A: int32(i)}
	}
	return s
}

var LayoutVariants = []harness.Variant{"value-slice", "pointer-slice"}

var LayoutSizes = harness.MustSizes(100, 10000)

// LayoutBenches 构造 N 个记录的两种布局，构造就是被测对象
func LayoutBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("record_layout", harness.UnitElements, LayoutVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			switch v {
			case "value-slice":
				return withGCCount(harness.Plain(func() { harness.Consume(newRecordValueSlice(harness.Observe(n.Int()))) }))
			case "pointer-slice":
				return withGCCount(harness.Plain(func() { harness.Consume(newRecordPointerSlice(harness.Observe(n.Int()))) }))
			}
			return nil
		})
}
