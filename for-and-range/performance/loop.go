package performance

import (
	"iter"
	"slices"
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

// 同一个计算（过滤掉 3 的倍数，其余右移一位再求和）的几种写法:
//   - for-index / range: 手写循环
//   - iter-adapters: 用 iter.Seq 串起 Filter 和 Map，全程惰性，不产生中间切片
//   - collect-then-sum: 先 slices.Collect 出中间结果再求和，每次操作至少一次分配

func keep(x uint64) bool      { return x%3 != 0 }
func project(x uint64) uint64 { return x >> 1 }

//go:noinline
func SumForIndex(nums []uint64) uint64 {
	var acc uint64
	for i := 0; i < len(nums); i++ {
		if keep(nums[i]) {
			acc += project(nums[i])
		}
	}
	return acc
}

//go:noinline
func SumRange(nums []uint64) uint64 {
	var acc uint64
	for _, x := range nums {
		if keep(x) {
			acc += project(x)
		}
	}
	return acc
}

// Filter 惰性过滤
func Filter[T any](seq iter.Seq[T], pred func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if pred(v) && !yield(v) {
				return
			}
		}
	}
}

// Map 惰性映射
func Map[T, U any](seq iter.Seq[T], f func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range seq {
			if !yield(f(v)) {
				return
			}
		}
	}
}

func pipeline(nums []uint64) iter.Seq[uint64] {
	return Map(Filter(slices.Values(nums), keep), project)
}

//go:noinline
func SumAdapters(nums []uint64) uint64 {
	var acc uint64
	for x := range pipeline(nums) {
		acc += x
	}
	return acc
}

//go:noinline
func SumCollect(nums []uint64) uint64 {
	var acc uint64
	for _, x := range slices.Collect(pipeline(nums)) {
		acc += x
	}
	return acc
}

type LoopVariant struct {
	Name string
	Fn   func([]uint64) uint64
}

func (v LoopVariant) String() string { return v.Name }

var (
	LoopVariants = []LoopVariant{
		{"for-index", SumForIndex},
		{"range", SumRange},
		{"iter-adapters", SumAdapters},
		{"collect-then-sum", SumCollect},
	}
	LoopSizes = harness.MustSizes(1000, 100000)
)

// Numbers 长度为 n 的确定性输入
func Numbers(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = fabricate.Number(i)
	}
	return out
}

// LoopBenches 输入在计时区外造好，同一规模的变体共用一份
func LoopBenches(sizes []harness.SizeClass) []harness.Bench {
	inputs := map[harness.SizeClass][]uint64{}
	return harness.Expand("loop_style", harness.UnitElements, LoopVariants, sizes,
		func(v LoopVariant, n harness.SizeClass) func(b *testing.B) {
			nums, ok := inputs[n]
			if !ok {
				nums = Numbers(n.Int())
				inputs[n] = nums
			}
			return harness.Plain(func() { harness.Consume(v.Fn(harness.Observe(nums))) })
		})
}

// Item 每个元素约 4KB
type Item struct {
	id  int
	val [4096]byte
}

// range 按值遍历会把每个 Item 拷贝一遍，只取下标或遍历指针时没有这份拷贝。

//go:noinline
func IDsForIndex(items []Item) int {
	var acc int
	for i := 0; i < len(items); i++ {
		acc += items[i].id
	}
	return acc
}

//go:noinline
func IDsRangeIndex(items []Item) int {
	var acc int
	for i := range items {
		acc += items[i].id
	}
	return acc
}

//go:noinline
func IDsRangeValue(items []Item) int {
	var acc int
	for _, item := range items {
		acc += item.id + int(item.val[len(item.val)-1])
	}
	return acc
}

//go:noinline
func IDsRangePointer(items []*Item) int {
	var acc int
	for _, item := range items {
		acc += item.id
	}
	return acc
}

func NewItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i].id = i
	}
	return items
}

func NewItemPointers(n int) []*Item {
	items := make([]*Item, 0, n)
	for i := range n {
		items = append(items, &Item{id: i})
	}
	return items
}

var (
	ItemVariants = []harness.Variant{"for-index", "range-index", "range-value", "range-pointer"}
	ItemSizes    = harness.MustSizes(1024)
)

func ItemBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("range_large_items", harness.UnitElements, ItemVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			switch v {
			case "range-pointer":
				ptrs := NewItemPointers(n.Int())
				return harness.Plain(func() { harness.Consume(IDsRangePointer(harness.Observe(ptrs))) })
			case "for-index", "range-index", "range-value":
			default:
				return nil
			}
			items := NewItems(n.Int())
			fn := IDsForIndex
			switch v {
			case "range-index":
				fn = IDsRangeIndex
			case "range-value":
				fn = IDsRangeValue
			}
			return harness.Plain(func() { harness.Consume(fn(harness.Observe(items))) })
		})
}
