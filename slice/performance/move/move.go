package move

/*
把一块已经填好的存储整体交给调用方（owned move）或者冻结成定长切片再交出（box move），
每次迭代都不分配: repository 持有 buf/spare 两块预分配的存储，交出一块、收回一块。

Go 里的 "box" 用定长切片表达: len == cap，之后不能再 append 而不重新分配，
对应 "把可增长向量收缩成固定长度的堆块"。精确预分配时 len 已经等于 cap，
slices.Clip 不会分配也不会拷贝。

混合向量的 box move 有两种口径，分开命名:
  - forced-heap: 用一块预分配的堆切片构造向量（FromSlice），填充后原样交出，零分配零拷贝，
    即使 N 小到本可以内联。测的是 "堆模式下的装箱路径"。
  - natural: 按规模自然构造，N <= C 时向量在内联存储里，交出时必须分配并拷贝。
    这里的分配正是要观察的成本，因此用 harness.Plain 计时。
*/

import (
	"slices"
	"testing"

	"go-cost-notes/harness"
	"go-cost-notes/internal/smallvec"
)

// Variant (容器, 是否装箱, 模式)
type Variant struct {
	Kind  harness.ContainerKind
	Boxed bool
	Mode  harness.Mode
}

func (v Variant) String() string {
	s := v.Kind.String()
	if v.Boxed {
		s += "-box"
	} else {
		s += "-move"
	}
	if v.Kind.Hybrid() {
		s += "-" + v.Mode.String()
	}
	return s
}

var Variants = []Variant{
	{harness.Slice, false, harness.Natural},
	{harness.SmallVec, false, harness.Natural},
	{harness.TinyVec, false, harness.Natural},
	{harness.Slice, true, harness.Natural},
	{harness.SmallVec, true, harness.ForcedHeap},
	{harness.TinyVec, true, harness.ForcedHeap},
	{harness.SmallVec, true, harness.Natural},
	{harness.TinyVec, true, harness.Natural},
}

var DefaultSizes = harness.MustSizes(10, 100, 1000, 10000, 1000000)

// FillSlice 清空后写入 n 个元素。容量不足时一次补足，之后不再分配。
//
//go:noinline
func FillSlice(s []uint32, n int) []uint32 {
	s = s[:0]
	if cap(s) < n {
		s = slices.Grow(s, n)
	}
	for i := range n {
		s = append(s, harness.Observe(uint32(i)))
	}
	return s
}

// FillVec 清空后写入 n 个元素，保留向量当前的模式和容量
//
//go:noinline
func FillVec[A smallvec.Inline[uint32]](v *smallvec.Vec[uint32, A], n int) {
	v.Clear()
	for i := range n {
		v.Push(harness.Observe(uint32(i)))
	}
}

// newVec 按自然模式构造: 规模超过内联容量才预分配堆空间
func newVec[A smallvec.Inline[uint32]](n int) *smallvec.Vec[uint32, A] {
	v := smallvec.WithCapacity[uint32, A](n)
	return &v
}

func vecStore[A smallvec.Inline[uint32]]() harness.Store[*smallvec.Vec[uint32, A]] {
	return harness.Store[*smallvec.Vec[uint32, A]]{
		Clear: func(v *smallvec.Vec[uint32, A]) *smallvec.Vec[uint32, A] { v.Clear(); return v },
		Cap:   func(v *smallvec.Vec[uint32, A]) int { return v.Cap() },
	}
}

// SliceRepo 切片的 owned move / box move
type SliceRepo struct {
	n   int
	buf *harness.Buffer[[]uint32]
}

func NewSliceRepo(n harness.SizeClass) *SliceRepo {
	return &SliceRepo{n: n.Int(), buf: harness.NewSliceBuffer[uint32](n)}
}

func (r *SliceRepo) fill(s []uint32) []uint32 { return FillSlice(s, r.n) }

// FetchMove 交出填好的切片，调用方用完后 Recycle
//
//go:noinline
func (r *SliceRepo) FetchMove() []uint32 {
	return r.buf.Fetch(r.fill)
}

// FetchBox 交出定长切片（len == cap）
//
//go:noinline
func (r *SliceRepo) FetchBox() []uint32 {
	return slices.Clip(r.buf.Fetch(r.fill))
}

//go:noinline
func (r *SliceRepo) Recycle(s []uint32) {
	r.buf.Recycle(s)
}

// VecRepo 混合向量的 owned move，自然模式
type VecRepo[A smallvec.Inline[uint32]] struct {
	n   int
	buf *harness.Buffer[*smallvec.Vec[uint32, A]]
}

func NewVecRepo[A smallvec.Inline[uint32]](n harness.SizeClass) *VecRepo[A] {
	return &VecRepo[A]{
		n:   n.Int(),
		buf: harness.NewBuffer(newVec[A](n.Int()), newVec[A](n.Int()), vecStore[A]()),
	}
}

func (r *VecRepo[A]) fill(v *smallvec.Vec[uint32, A]) *smallvec.Vec[uint32, A] {
	FillVec(v, r.n)
	return v
}

//go:noinline
func (r *VecRepo[A]) FetchMove() *smallvec.Vec[uint32, A] {
	return r.buf.Fetch(r.fill)
}

//go:noinline
func (r *VecRepo[A]) Recycle(v *smallvec.Vec[uint32, A]) {
	r.buf.Recycle(v)
}

// ForcedHeapRepo 混合向量的 box move: 每次用预分配的堆切片构造向量，强制堆模式
type ForcedHeapRepo[A smallvec.Inline[uint32]] struct {
	n   int
	vec smallvec.Vec[uint32, A]
	buf *harness.Buffer[[]uint32]
}

func NewForcedHeapRepo[A smallvec.Inline[uint32]](n harness.SizeClass) *ForcedHeapRepo[A] {
	return &ForcedHeapRepo[A]{n: n.Int(), buf: harness.NewSliceBuffer[uint32](n)}
}

func (r *ForcedHeapRepo[A]) fill(s []uint32) []uint32 {
	r.vec = smallvec.FromSlice[uint32, A](s)
	FillVec(&r.vec, r.n)
	return slices.Clip(r.vec.IntoSlice())
}

//go:noinline
func (r *ForcedHeapRepo[A]) FetchBox() []uint32 {
	return r.buf.Fetch(r.fill)
}

//go:noinline
func (r *ForcedHeapRepo[A]) Recycle(s []uint32) {
	r.buf.Recycle(s)
}

// NaturalBox 自然模式构造后装箱: N <= C 时要分配并拷贝，N > C 时复用溢出的堆块
//
//go:noinline
func NaturalBox[A smallvec.Inline[uint32]](n int) []uint32 {
	v := smallvec.WithCapacity[uint32, A](n)
	FillVec(&v, n)
	return slices.Clip(v.IntoSlice())
}

func lastOf(s []uint32) []uint32 {
	if len(s) > 0 {
		harness.Consume(s[len(s)-1])
	}
	return s
}

func lastOfVec[A smallvec.Inline[uint32]](v *smallvec.Vec[uint32, A]) *smallvec.Vec[uint32, A] {
	last, _ := v.Last()
	harness.Consume(last)
	return v
}

// Build 为一个单元构造被测闭包。除 natural box 外全部是形式 A。
func Build(v Variant, n harness.SizeClass) func(b *testing.B) {
	switch {
	case v.Kind == harness.Slice && !v.Boxed:
		repo := NewSliceRepo(n)
		return harness.Recycle(repo.buf, repo.fill, lastOf)
	case v.Kind == harness.Slice && v.Boxed:
		repo := NewSliceRepo(n)
		return func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				bx := repo.FetchBox()
				harness.Consume(len(bx))
				repo.Recycle(bx)
			}
		}
	case v.Kind == harness.SmallVec && !v.Boxed:
		repo := NewVecRepo[[128]uint32](n)
		return harness.Recycle(repo.buf, repo.fill, lastOfVec[[128]uint32])
	case v.Kind == harness.TinyVec && !v.Boxed:
		repo := NewVecRepo[[100]uint32](n)
		return harness.Recycle(repo.buf, repo.fill, lastOfVec[[100]uint32])
	case v.Kind == harness.SmallVec && v.Mode == harness.ForcedHeap:
		repo := NewForcedHeapRepo[[128]uint32](n)
		return harness.Recycle(repo.buf, repo.fill, lastOf)
	case v.Kind == harness.TinyVec && v.Mode == harness.ForcedHeap:
		repo := NewForcedHeapRepo[[100]uint32](n)
		return harness.Recycle(repo.buf, repo.fill, lastOf)
	case v.Kind == harness.SmallVec:
		return harness.Plain(func() { harness.Consume(len(NaturalBox[[128]uint32](harness.Observe(n.Int())))) })
	case v.Kind == harness.TinyVec:
		return harness.Plain(func() { harness.Consume(len(NaturalBox[[100]uint32](harness.Observe(n.Int())))) })
	}
	return nil
}

// Benches owned_move / box_move 矩阵
func Benches(sizes []harness.SizeClass) []harness.Bench {
	var moves, boxes []Variant
	for _, v := range Variants {
		if v.Boxed {
			boxes = append(boxes, v)
		} else {
			moves = append(moves, v)
		}
	}
	out := harness.Expand("owned_move", harness.UnitElements, moves, sizes, Build)
	return append(out, harness.Expand("box_move", harness.UnitElements, boxes, sizes, Build)...)
}
