package valuevspointer

import (
	"fmt"
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

// 值传递 vs 指针传递对不同大小 struct 的性能影响
//
// Go 的 struct 是值类型，赋值和传参都会完整拷贝。
// 对于小 struct，值传递可能比指针传递更快（栈分配，无 GC 压力）。
// 对于大 struct，值传递的拷贝开销会成为瓶颈。

// Flat16 小 struct (16 字节)
type Flat16 struct {
	X, Y int64
}

// Flat128 中等 struct (128 字节)
type Flat128 struct {
	Data [16]int64
}

// Flat1024 大 struct (1024 字节)
type Flat1024 struct {
	Data [128]int64
}

//go:noinline
func ProcessFlat16Value(s Flat16) int64 { return s.X + s.Y }

//go:noinline
func ProcessFlat16Pointer(s *Flat16) int64 { return s.X + s.Y }

//go:noinline
func ProcessFlat128Value(s Flat128) int64 { return s.Data[0] + s.Data[15] }

//go:noinline
func ProcessFlat128Pointer(s *Flat128) int64 { return s.Data[0] + s.Data[15] }

//go:noinline
func ProcessFlat1024Value(s Flat1024) int64 { return s.Data[0] + s.Data[127] }

//go:noinline
func ProcessFlat1024Pointer(s *Flat1024) int64 { return s.Data[0] + s.Data[127] }

var (
	FlatVariants = []harness.Variant{"value", "pointer"}
	// FlatSizes 即 struct 的字节数
	FlatSizes = harness.MustSizes(16, 128, 1024)
)

func flatBench[F any](v harness.Variant, f *F, byValue func(F) int64, byPointer func(*F) int64) func(b *testing.B) {
	switch v {
	case "value":
		return harness.Plain(func() { harness.Consume(byValue(*harness.Observe(f))) })
	case "pointer":
		return harness.Plain(func() { harness.Consume(byPointer(harness.Observe(f))) })
	}
	return nil
}

// FlatBenches 没有堆上字段的 struct，按值还是按指针传给一次禁止内联的调用
func FlatBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("flat_value_vs_pointer", harness.UnitBytes, FlatVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			switch n {
			case 16:
				return flatBench(v, &Flat16{X: 1, Y: 2}, ProcessFlat16Value, ProcessFlat16Pointer)
			case 128:
				f := &Flat128{}
				f.Data[0], f.Data[15] = 1, 2
				return flatBench(v, f, ProcessFlat128Value, ProcessFlat128Pointer)
			case 1024:
				f := &Flat1024{}
				f.Data[0], f.Data[127] = 1, 2
				return flatBench(v, f, ProcessFlat1024Value, ProcessFlat1024Pointer)
			}
			return nil
		})
}

// 下面是带堆上字段的记录（fabricate.Small/Medium/Large）跨函数边界的五种方式:
//   - move: 按值交出，只拷贝 struct 头部，切片和 map 的底层数据共享
//   - clone: 深拷贝，每个切片、map、指针字段都重新分配
//   - borrow / borrow-mut: 只传指针
//   - box-move: 先把值放到堆上（一次分配），再传指针
// 所有函数都禁止内联，保证测到的是一次真实的调用。

//go:noinline
func Move[R any](r R) R { return r }

type cloner[R any] interface {
	*R
	Clone() R
}

//go:noinline
func Clone[R any, P cloner[R]](r P) R { return r.Clone() }

//go:noinline
func Borrow[R any](r *R) *R { return r }

//go:noinline
func BorrowMut[R any](r *R, edit func(*R)) *R {
	edit(r)
	return r
}

// Box 把值搬到堆上。返回指针且禁止内联，逃逸分析只能把 p 放在堆上。
//
//go:noinline
func Box[R any](r R) *R {
	p := new(R)
	*p = r
	return p
}

//go:noinline
func MoveBox[R any](p *R) *R { return p }

// Record 一种记录: 构造函数和一次可观察的原地修改
type Record[R any] struct {
	New  func(i int) R
	Edit func(*R)
}

var (
	SmallRecord  = Record[fabricate.Small]{New: fabricate.NewSmall, Edit: func(r *fabricate.Small) { r.A++ }}
	MediumRecord = Record[fabricate.Medium]{New: fabricate.NewMedium, Edit: func(r *fabricate.Medium) { r.A++ }}
	LargeRecord  = Record[fabricate.Large]{New: fabricate.NewLarge, Edit: func(r *fabricate.Large) { r.A++ }}
)

// 记录的字段数，作为矩阵里的规模
const (
	SmallFields  = 10
	MediumFields = 20
	LargeFields  = 32
)

var RecordSizes = harness.MustSizes(SmallFields, MediumFields, LargeFields)

// Bench 为一种记录和一种策略构造被测闭包。
//
// move 和 box-move 消费一个新值，用形式 B: 构造在计时区外，计时区只有交接本身。
// clone/borrow/borrow-mut 作用在预先构造好的同一个对象上，构造不计入。
func Bench[R any, P cloner[R]](rec Record[R], s harness.Strategy) func(b *testing.B) {
	switch s {
	case harness.Move:
		return harness.Batched(counter(rec.New), Move[R])
	case harness.BoxMove:
		return harness.Batched(counter(rec.New), func(r R) *R { return MoveBox(Box(r)) })
	}

	fixture := rec.New(0)
	switch s {
	case harness.Clone:
		return harness.Plain(func() { harness.Consume(Clone[R, P](harness.Observe(&fixture))) })
	case harness.Borrow:
		return harness.Plain(func() { harness.Consume(Borrow(harness.Observe(&fixture))) })
	case harness.BorrowMut:
		return harness.Plain(func() { harness.Consume(BorrowMut(harness.Observe(&fixture), rec.Edit)) })
	}
	return nil
}

// counter 每次返回下标递增的新记录，内容互不相同
func counter[R any](newR func(int) R) func() R {
	i := 0
	return func() R {
		i++
		return newR(i)
	}
}

func build(s harness.Strategy, n harness.SizeClass) func(b *testing.B) {
	switch n {
	case SmallFields:
		return Bench(SmallRecord, s)
	case MediumFields:
		return Bench(MediumRecord, s)
	case LargeFields:
		return Bench(LargeRecord, s)
	}
	panic(fmt.Sprintf("valuevspointer: no record with %d fields", n))
}

// Benches ownership 矩阵: 记录大小 × 五种策略
func Benches() []harness.Bench {
	return harness.Expand("ownership", harness.UnitNone, harness.Strategies(), RecordSizes, build)
}
