package mapping

import (
	"fmt"
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

// 把 V1 记录映射成字段相同的 V2（DTO 转换），几种写法:
//   - move: 按值接收 V1，V2 直接接管它的切片和 map，只改几个标量
//   - clone: 按值接收 V1，但先深拷贝一份再转换
//   - ref: 只拿到 *V1，要得到独立的 V2 只能深拷贝
//   - return-input: 原样返回输入，作为 move 的对照，差距就是映射本身的成本
//
// 消费输入的三种（move/clone/return-input）用形式 B，新记录在计时区外构造；
// ref 作用在预先构造好的同一个记录上。

type (
	SmallV2  fabricate.Small
	MediumV2 fabricate.Medium
	LargeV2  fabricate.Large
)

//go:noinline
func SmallToV2Move(in fabricate.Small) SmallV2 {
	out := SmallV2(in)
	out.A++
	out.C++
	return out
}

//go:noinline
func SmallToV2Clone(in fabricate.Small) SmallV2 { return SmallToV2Move(in.Clone()) }

//go:noinline
func SmallToV2Ref(in *fabricate.Small) SmallV2 { return SmallToV2Move(in.Clone()) }

//go:noinline
func MediumToV2Move(in fabricate.Medium) MediumV2 {
	out := MediumV2(in)
	out.A++
	out.C++
	out.M = !out.M
	return out
}

//go:noinline
func MediumToV2Clone(in fabricate.Medium) MediumV2 { return MediumToV2Move(in.Clone()) }

//go:noinline
func MediumToV2Ref(in *fabricate.Medium) MediumV2 { return MediumToV2Move(in.Clone()) }

//go:noinline
func LargeToV2Move(in fabricate.Large) LargeV2 {
	out := LargeV2(in)
	out.A++
	out.G++
	out.J++
	return out
}

//go:noinline
func LargeToV2Clone(in fabricate.Large) LargeV2 { return LargeToV2Move(in.Clone()) }

//go:noinline
func LargeToV2Ref(in *fabricate.Large) LargeV2 { return LargeToV2Move(in.Clone()) }

//go:noinline
func ReturnInput[R any](in R) R { return in }

// Mapper 一种记录的构造函数和三个转换函数
type Mapper[V1, V2 any] struct {
	New   func(i int) V1
	Move  func(V1) V2
	Clone func(V1) V2
	Ref   func(*V1) V2
}

var (
	SmallMapper  = Mapper[fabricate.Small, SmallV2]{fabricate.NewSmall, SmallToV2Move, SmallToV2Clone, SmallToV2Ref}
	MediumMapper = Mapper[fabricate.Medium, MediumV2]{fabricate.NewMedium, MediumToV2Move, MediumToV2Clone, MediumToV2Ref}
	LargeMapper  = Mapper[fabricate.Large, LargeV2]{fabricate.NewLarge, LargeToV2Move, LargeToV2Clone, LargeToV2Ref}
)

var (
	Variants = []harness.Variant{"move", "clone", "ref", "return-input"}
	// Sizes 记录的字段数
	Sizes = harness.MustSizes(10, 20, 32)
)

// Bench 为一种记录和一种写法构造被测闭包
func Bench[V1, V2 any](m Mapper[V1, V2], v harness.Variant) func(b *testing.B) {
	switch v {
	case "move":
		return harness.Batched(counter(m.New), m.Move)
	case "clone":
		return harness.Batched(counter(m.New), m.Clone)
	case "return-input":
		return harness.Batched(counter(m.New), ReturnInput[V1])
	case "ref":
		fixture := m.New(0)
		return harness.Plain(func() { harness.Consume(m.Ref(harness.Observe(&fixture))) })
	}
	return nil
}

func counter[R any](newR func(int) R) func() R {
	i := 0
	return func() R {
		i++
		return newR(i)
	}
}

func build(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
	switch n {
	case 10:
		return Bench(SmallMapper, v)
	case 20:
		return Bench(MediumMapper, v)
	case 32:
		return Bench(LargeMapper, v)
	}
	panic(fmt.Sprintf("mapping: no record with %d fields", n))
}

// Benches dto_mapping 矩阵: 记录大小 × 四种写法
func Benches() []harness.Bench {
	return harness.Expand("dto_mapping", harness.UnitNone, Variants, Sizes, build)
}
