package performance

import (
	"testing"

	"go-cost-notes/harness"
)

// 标量按值还是按指针传: int64 一个寄存器放得下，Int128 两个。
// 指针版本多一次解引用，按值版本多一次拷贝，两者都远小于调用本身的开销。

// Int128 没有原生 128 位整数，用两个 64 位字拼
type Int128 struct {
	Hi, Lo uint64
}

func (x Int128) Inc() Int128 {
	lo := x.Lo + 1
	hi := x.Hi
	if lo == 0 {
		hi++
	}
	return Int128{Hi: hi, Lo: lo}
}

//go:noinline
func Int64ByValue(v int64) int64 { return v + 1 }

//go:noinline
func Int64ByRef(v *int64) int64 { return (*v + 1) * *v }

// Int64ReturnsRef 读一次再把指针原样交回
//
//go:noinline
func Int64ReturnsRef(v *int64) *int64 {
	harness.Consume(*v + 1)
	return v
}

//go:noinline
func Int128ByValue(v Int128) Int128 { return v.Inc() }

//go:noinline
func Int128ByRef(v *Int128) Int128 { return v.Inc() }

//go:noinline
func Int128ReturnsRef(v *Int128) *Int128 {
	harness.Consume(v.Inc())
	return v
}

var (
	ScalarVariants = []harness.Variant{"by-value", "by-ref", "returns-ref"}
	// ScalarSizes 标量的字节数
	ScalarSizes = harness.MustSizes(8, 16)
)

// ScalarBenches 输入都经过屏障，指针指向计时区外准备好的值
func ScalarBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("scalar_pass", harness.UnitNone, ScalarVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			switch n {
			case 8:
				x := int64(1234567890123456789)
				switch v {
				case "by-value":
					return harness.Plain(func() { harness.Consume(Int64ByValue(harness.Observe(x))) })
				case "by-ref":
					return harness.Plain(func() { harness.Consume(Int64ByRef(harness.Observe(&x))) })
				case "returns-ref":
					return harness.Plain(func() { harness.Consume(Int64ReturnsRef(harness.Observe(&x))) })
				}
			case 16:
				x := Int128{Hi: 0x1_8EE9_0FF6, Lo: 0xC373_E0EE_4E3F_0AD2}
				switch v {
				case "by-value":
					return harness.Plain(func() { harness.Consume(Int128ByValue(harness.Observe(x))) })
				case "by-ref":
					return harness.Plain(func() { harness.Consume(Int128ByRef(harness.Observe(&x))) })
				case "returns-ref":
					return harness.Plain(func() { harness.Consume(Int128ReturnsRef(harness.Observe(&x))) })
				}
			}
			return nil
		})
}
