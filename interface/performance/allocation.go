package performance

import (
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

// SmallValue 小值类型（<=指针大小，运行时可能不分配）
type SmallValue struct {
	X int
}

func (s SmallValue) Value() int     { return s.X }
func (s *SmallValue) PtrValue() int { return s.X }

// LargeValue 大值类型（>指针大小，装箱时一定会堆分配）
type LargeValue struct {
	A, B, C, D, E, F, G, H int
}

func (l LargeValue) Value() int     { return l.A }
func (l *LargeValue) PtrValue() int { return l.A }

// Valuer 用于测试值接收者 vs 指针接收者
type Valuer interface {
	Value() int
}

// PtrValuer 用于测试指针接收者
type PtrValuer interface {
	PtrValue() int
}

// BoxAny 把值放进 any。禁止内联，装箱必须真的发生。
//
//go:noinline
func BoxAny[T any](v T) any { return v }

var BoxVariants = []harness.Variant{"small-value", "large-value", "payload-value", "payload-pointer"}

// BoxBenches 装箱的成本: 小值、大值、带堆字段的 Payload 按值装箱，以及已是指针的 Payload。
// 只有一个规模，规模取 Payload 的字节数。
func BoxBenches() []harness.Bench {
	const bytes = 256
	return harness.Expand("box_any", harness.UnitNone, BoxVariants, harness.MustSizes(bytes),
		func(v harness.Variant, _ harness.SizeClass) func(b *testing.B) {
			p := fabricate.NewPayload(bytes, 4, 4)
			switch v {
			case "small-value":
				return harness.Plain(func() { harness.Consume(BoxAny(SmallValue{X: harness.Observe(1 << 20)})) })
			case "large-value":
				return harness.Plain(func() { harness.Consume(BoxAny(LargeValue{A: harness.Observe(1)})) })
			case "payload-value":
				return harness.Plain(func() { harness.Consume(BoxAny(*harness.Observe(&p))) })
			case "payload-pointer":
				return harness.Plain(func() { harness.Consume(BoxAny(harness.Observe(&p))) })
			}
			return nil
		})
}
