package performance

import (
	"slices"
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
	"go-cost-notes/internal/smallmap"
)

// 内置 map 的两种构造方式: 不预分配时插入过程中多次扩容搬迁，预分配一次到位
//
//go:noinline
func WithoutPreAlloc(size int) int {
	data := make(map[uint32]uint32)
	for i := range size {
		data[harness.Observe(uint32(i))] = uint32(i)
	}
	harness.Consume(data[0])
	return len(data)
}

//go:noinline
func PreAlloc(size int) int {
	data := make(map[uint32]uint32, size)
	for i := range size {
		data[harness.Observe(uint32(i))] = uint32(i)
	}
	harness.Consume(data[0])
	return len(data)
}

// SmallMap 内联 128 个键值对，超过后溢出到内置 map
//
//go:noinline
func SmallMap(size int) int {
	m := smallmap.New[uint32, uint32, [128]smallmap.Entry[uint32, uint32]]()
	for i := range size {
		m.Insert(harness.Observe(uint32(i)), uint32(i))
	}
	v, _ := m.Get(0)
	harness.Consume(v)
	return m.Len()
}

// arrayMap 固定容量，size 不能超过数组长度
//
//go:noinline
func arrayMap[A smallmap.Inline[uint32, uint32]](size int) int {
	m := smallmap.NewFixed[uint32, uint32, A]()
	for i := range size {
		m.Insert(harness.Observe(uint32(i)), uint32(i))
	}
	v, _ := m.Get(0)
	harness.Consume(v)
	return m.Len()
}

// ArrayMapCap 固定容量 map 的数组长度，与 harness.ArrayMap 的内联容量一致
const ArrayMapCap = 128

// ArrayMap 所有规模都用同一个 [ArrayMapCap] 数组，超过容量时返回 nil
func ArrayMap(size int) func(int) int {
	if size > ArrayMapCap {
		return nil
	}
	return arrayMap[[ArrayMapCap]smallmap.Entry[uint32, uint32]]
}

var (
	SmallSizes = harness.MustSizes(5, 10, 14, 15, 20, 30, 40, 64, 100, 128)
	LargeSizes = harness.MustSizes(1000, 10000, 100000)
)

var FillVariants = []harness.Variant{"map-grow", "map-prealloc", harness.Variant(harness.SmallMap.String()), harness.Variant(harness.ArrayMap.String())}

func fillFunc(v harness.Variant, n harness.SizeClass) func(int) int {
	switch v {
	case "map-grow":
		return WithoutPreAlloc
	case "map-prealloc":
		return PreAlloc
	case harness.Variant(harness.SmallMap.String()):
		return SmallMap
	case harness.Variant(harness.ArrayMap.String()):
		return ArrayMap(n.Int())
	}
	return nil
}

// FillBenches map_make_and_fill 矩阵，构造和插入都在计时区内
func FillBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("map_make_and_fill", harness.UnitElements, FillVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			fn := fillFunc(v, n)
			if fn == nil {
				return nil
			}
			return harness.Plain(func() { harness.Consume(fn(harness.Observe(n.Int()))) })
		})
}

// Haystack 查找用的数据: 同一组固定种子的值，分别放进切片、有序切片和 map
type Haystack struct {
	Values []uint32
	Sorted []uint32
	Set    map[uint32]struct{}
	// Missing 一定不在数据里，线性查找走完全程
	Missing uint32
}

func NewHaystack(n int) *Haystack {
	h := &Haystack{
		Values:  make([]uint32, n),
		Set:     make(map[uint32]struct{}, n),
		Missing: uint32(n) + 1,
	}
	for i, x := range fabricate.SearchTargets(n, n) {
		h.Values[i] = uint32(x)
		h.Set[uint32(x)] = struct{}{}
	}
	h.Sorted = slices.Clone(h.Values)
	slices.Sort(h.Sorted)
	return h
}

//go:noinline
func LinearSearch(s []uint32, x uint32) bool {
	return slices.Contains(s, x)
}

//go:noinline
func BinarySearch(sorted []uint32, x uint32) bool {
	_, ok := slices.BinarySearch(sorted, x)
	return ok
}

//go:noinline
func MapLookup(m map[uint32]struct{}, x uint32) bool {
	_, ok := m[x]
	return ok
}

var SearchVariants = []harness.Variant{"slice-linear", "map-lookup", "slice-binary-presorted", "slice-sort-then-binary"}

var SearchSizes = harness.MustSizes(10, 100, 1000, 10000, 100000, 1000000)

func searchBench(h *Haystack, v harness.Variant, n harness.SizeClass) func(b *testing.B) {
	switch v {
	case "slice-linear":
		return harness.Plain(func() { harness.Consume(LinearSearch(h.Values, harness.Observe(h.Missing))) })
	case "map-lookup":
		return harness.Plain(func() { harness.Consume(MapLookup(h.Set, harness.Observe(h.Missing))) })
	case "slice-binary-presorted":
		return harness.Plain(func() { harness.Consume(BinarySearch(h.Sorted, harness.Observe(h.Missing))) })
	case "slice-sort-then-binary":
		// 拷贝 + 排序 + 查找都算在内，拷贝目标复用，不分配
		buf := harness.NewSliceBuffer[uint32](n)
		return harness.Recycle(buf,
			func(s []uint32) []uint32 {
				s = append(s, h.Values...)
				slices.Sort(s)
				return s
			},
			func(s []uint32) []uint32 {
				harness.Consume(BinarySearch(s, harness.Observe(h.Missing)))
				return s
			})
	}
	return nil
}

// SearchBenches 一次查找一个不存在的值
func SearchBenches(sizes []harness.SizeClass) []harness.Bench {
	hay := make(map[harness.SizeClass]*Haystack, len(sizes))
	return harness.Expand("search_absent", harness.UnitElements, SearchVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			h, ok := hay[n]
			if !ok {
				h = NewHaystack(n.Int())
				hay[n] = h
			}
			return searchBench(h, v, n)
		})
}
