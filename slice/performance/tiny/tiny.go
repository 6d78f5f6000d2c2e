package tiny

/*
大量小向量: 每次操作创建并丢弃 Reps 个最多 K 个元素的向量。

"固定 K" 每个向量恰好 K 个元素；"变长" 每个向量的长度在 [0, K] 内，
由固定种子的 LCG 预先算好，随机数生成不进计时区，各变体用同一组长度。

Go 的逃逸分析会把不逃逸、常量大小的 make 放在栈上，所以 slice-make-k 往往和内联向量一样不分配；
从 nil 开始 append 的 slice-grow 才是 "每个小向量一次堆分配" 的对照组。
*/

import (
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
	"go-cost-notes/internal/smallvec"
)

const (
	Reps = 10_000
	K    = 8

	variedSeed = 0xDEADBEEFCAFEBABE
)

type vec8 = smallvec.Vec[uint32, [K]uint32]

type Variant struct {
	Name string
	Fn   func(sizes []int) uint64
}

func (v Variant) String() string { return v.Name }

var Variants = []Variant{
	{"slice-grow", SliceGrow},
	{"slice-make-k", SliceMakeK},
	{harness.TinyVec8.String(), TinyVec},
	{"slice-recycled", SliceRecycled},
}

// sum 对向量做最少量的使用
func sum(s []uint32) uint64 {
	var acc uint64
	for _, x := range s {
		acc += uint64(x)
	}
	return acc
}

//go:noinline
func SliceGrow(sizes []int) uint64 {
	var acc uint64
	for _, k := range sizes {
		var s []uint32
		for i := range k {
			s = append(s, harness.Observe(uint32(i)))
		}
		acc += sum(s)
	}
	return acc
}

//go:noinline
func SliceMakeK(sizes []int) uint64 {
	var acc uint64
	for _, k := range sizes {
		s := make([]uint32, 0, K)
		for i := range k {
			s = append(s, harness.Observe(uint32(i)))
		}
		acc += sum(s)
	}
	return acc
}

//go:noinline
func TinyVec(sizes []int) uint64 {
	var acc uint64
	for _, k := range sizes {
		var v vec8
		for i := range k {
			v.Push(harness.Observe(uint32(i)))
		}
		acc += sum(v.Items())
	}
	return acc
}

// SliceRecycled 一个切片反复清空复用，是 "不分配" 的下界
//
//go:noinline
func SliceRecycled(sizes []int) uint64 {
	var acc uint64
	s := make([]uint32, 0, K)
	for _, k := range sizes {
		s = s[:0]
		for i := range k {
			s = append(s, harness.Observe(uint32(i)))
		}
		acc += sum(s)
	}
	return acc
}

// FixedSizes reps 个 K
func FixedSizes(reps int) []int {
	out := make([]int, reps)
	for i := range out {
		out[i] = K
	}
	return out
}

// VariedSizes reps 个 [0, K] 内的固定种子长度
func VariedSizes(reps int) []int {
	return fabricate.TinySizes(variedSeed, reps, K)
}

func total(sizes []int) int {
	n := 0
	for _, k := range sizes {
		n += k
	}
	return n
}

func group(name string, sizes []int) []harness.Bench {
	n := harness.SizeClass(total(sizes))
	return harness.Expand(name, harness.UnitElements, Variants, []harness.SizeClass{n},
		func(v Variant, _ harness.SizeClass) func(b *testing.B) {
			return harness.Plain(func() {
				harness.Consume(v.Fn(harness.Observe(sizes)))
			})
		})
}

// Benches 固定 K 与变长两组。单元的规模是每次操作压入的元素总数，ns/elem 可以直接比较。
func Benches(reps int) []harness.Bench {
	return append(group("many_tiny_fixed_k8", FixedSizes(reps)), group("many_tiny_varied_k8", VariedSizes(reps))...)
}
