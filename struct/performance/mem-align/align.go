package memalign

import (
	"testing"

	"go-cost-notes/harness"
)

// 字段相同，顺序不同。按对齐从小到大排列时 8 字节，打乱后因为填充变成 12 字节，
// 同样 N 个元素的切片多分配一半内存。

type Ordered struct {
	A int8
	B int16
	C int32
}

type Disordered struct {
	A int8
	C int32
	B int16
}

//go:noinline
func FillOrdered(n int) []Ordered {
	s := make([]Ordered, 0, n)
	for i := range n {
		s = append(s, Ordered{A: int8(i), B: int16(i), C: int32(i)})
	}
	return s
}

//go:noinline
func FillDisordered(n int) []Disordered {
	s := make([]Disordered, 0, n)
	for i := range n {
		s = append(s, Disordered{A: int8(i), C: int32(i), B: int16(i)})
	}
	return s
}

var (
	FieldOrderVariants = []harness.Variant{"ordered", "disordered"}
	FieldOrderSizes    = harness.MustSizes(1000, 100000)
)

// FieldOrderBenches make-and-fill，B/op 直接反映填充带来的差距
func FieldOrderBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("field_order", harness.UnitElements, FieldOrderVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			switch v {
			case "ordered":
				return harness.Plain(func() { harness.Consume(len(FillOrdered(harness.Observe(n.Int())))) })
			case "disordered":
				return harness.Plain(func() { harness.Consume(len(FillDisordered(harness.Observe(n.Int())))) })
			}
			return nil
		})
}
