package performance

import (
	"testing"

	"go-cost-notes/harness"
)

// 固定长度数组的两种产出方式:
//   - return-value: 函数内构造数组再按值返回，调用方再按值交给消费者
//   - out-param: 调用方准备好数组，函数通过指针原地填充，消费者也只拿指针
// 数组不逃逸时都在栈上，差别只在拷贝次数。

// Array 参与比较的数组长度
type Array interface {
	[16]byte | [256]byte | [4096]byte | [65536]byte
}

func pattern(i int) byte { return byte((uint32(i)*31 + 7) % 251) }

//go:noinline
func MakeArray[A Array]() A {
	var a A
	for i := 0; i < len(a); i++ {
		a[i] = pattern(i)
	}
	return a
}

//go:noinline
func FillArray[A Array](dst *A) {
	for i := 0; i < len(*dst); i++ {
		(*dst)[i] = pattern(i)
	}
}

//go:noinline
func SumValue[A Array](a A) uint64 {
	var s uint64
	for i := 0; i < len(a); i++ {
		s += uint64(a[i])
	}
	return s
}

//go:noinline
func SumRef[A Array](a *A) uint64 {
	var s uint64
	for i := 0; i < len(*a); i++ {
		s += uint64((*a)[i])
	}
	return s
}

func arrayBench[A Array](v harness.Variant) func(b *testing.B) {
	switch v {
	case "return-value":
		return harness.Plain(func() { harness.Consume(SumValue(MakeArray[A]())) })
	case "out-param":
		return harness.Plain(func() {
			var a A
			FillArray(&a)
			harness.Consume(SumRef(&a))
		})
	}
	return nil
}

var (
	ArrayVariants = []harness.Variant{"return-value", "out-param"}
	ArraySizes    = harness.MustSizes(16, 256, 4096, 65536)
)

// ArrayBenches 规模即数组字节数，吞吐按字节计；没有对应数组类型的规模跳过
func ArrayBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("array_return", harness.UnitBytes, ArrayVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			switch n {
			case 16:
				return arrayBench[[16]byte](v)
			case 256:
				return arrayBench[[256]byte](v)
			case 4096:
				return arrayBench[[4096]byte](v)
			case 65536:
				return arrayBench[[65536]byte](v)
			}
			return nil
		})
}
