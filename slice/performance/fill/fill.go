package fill

/*
构造并填充 N 个元素: 切片 vs 内联/堆混合向量，预分配 vs 自然扩容。

这里分配本身就是被测对象（make + 填充 + 丢弃），所以整个函数都在计时区内（harness.Plain）。

规模特意覆盖内联容量两侧: smallvec128 在 N=128 时仍是内联，N=129 时必须溢出；
tinyvec100 的分界在 100/101。N=0 是基线，测到的是调用本身的固定开销，不会是 0。
*/

import (
	"fmt"
	"testing"

	"go-cost-notes/harness"
	"go-cost-notes/internal/smallvec"
)

// Method 填充方式
type Method int

const (
	Prealloc Method = iota // 精确预分配 N
	Grow                   // 从空开始按几何扩容
	Indexed                // make(len=N) 后下标赋值，只对切片有意义
)

func (m Method) String() string {
	switch m {
	case Prealloc:
		return "prealloc"
	case Grow:
		return "grow"
	case Indexed:
		return "indexed"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

type Variant struct {
	Kind   harness.ContainerKind
	Method Method
}

func (v Variant) String() string { return v.Kind.String() + "-" + v.Method.String() }

var Variants = []Variant{
	{harness.Slice, Prealloc},
	{harness.Slice, Grow},
	{harness.Slice, Indexed},
	{harness.SmallVec, Prealloc},
	{harness.SmallVec, Grow},
	{harness.TinyVec, Prealloc},
	{harness.TinyVec, Grow},
}

var DefaultSizes = harness.MustSizes(0, 10, 100, 101, 128, 129, 1000, 10000, 100000)

//go:noinline
func SlicePrealloc(n int) int {
	s := make([]uint32, 0, n)
	for i := range n {
		s = append(s, harness.Observe(uint32(i)))
	}
	harness.Consume(s)
	return len(s)
}

//go:noinline
func SliceGrow(n int) int {
	var s []uint32
	for i := range n {
		s = append(s, harness.Observe(uint32(i)))
	}
	harness.Consume(s)
	return len(s)
}

//go:noinline
func SliceIndexed(n int) int {
	s := make([]uint32, n)
	for i := range s {
		s[i] = harness.Observe(uint32(i))
	}
	harness.Consume(s)
	return len(s)
}

// VecPrealloc N <= C 时留在内联存储，否则按 N 精确溢出一次
//
//go:noinline
func VecPrealloc[A smallvec.Inline[uint32]](n int) int {
	v := smallvec.WithCapacity[uint32, A](n)
	for i := range n {
		v.Push(harness.Observe(uint32(i)))
	}
	harness.Consume(v.Items())
	return v.Len()
}

// VecGrow 从内联开始，超过 C 时溢出并继续扩容
//
//go:noinline
func VecGrow[A smallvec.Inline[uint32]](n int) int {
	v := smallvec.New[uint32, A]()
	for i := range n {
		v.Push(harness.Observe(uint32(i)))
	}
	harness.Consume(v.Items())
	return v.Len()
}

// Func 返回变体对应的被测函数，组合不成立时返回 nil
func Func(v Variant) func(n int) int {
	switch v {
	case Variant{harness.Slice, Prealloc}:
		return SlicePrealloc
	case Variant{harness.Slice, Grow}:
		return SliceGrow
	case Variant{harness.Slice, Indexed}:
		return SliceIndexed
	case Variant{harness.SmallVec, Prealloc}:
		return VecPrealloc[[128]uint32]
	case Variant{harness.SmallVec, Grow}:
		return VecGrow[[128]uint32]
	case Variant{harness.TinyVec, Prealloc}:
		return VecPrealloc[[100]uint32]
	case Variant{harness.TinyVec, Grow}:
		return VecGrow[[100]uint32]
	}
	return nil
}

// Benches make_and_fill 矩阵
func Benches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("make_and_fill", harness.UnitElements, Variants, sizes,
		func(v Variant, n harness.SizeClass) func(b *testing.B) {
			fn := Func(v)
			if fn == nil {
				return nil
			}
			return harness.Plain(func() {
				harness.Consume(fn(harness.Observe(n.Int())))
			})
		})
}
