package harness

// Store 描述一种可回收后备存储的两个基本操作。
//
// Clear 必须清空元素但保留容量（以及混合容器的当前模式），
// 对切片来说就是 s[:0]；Cap 返回当前容量。
type Store[S any] struct {
	Clear func(S) S
	Cap   func(S) int
}

// SliceStore 普通切片的 Store
func SliceStore[T any]() Store[[]T] {
	return Store[[]T]{
		Clear: func(s []T) []T { return s[:0] },
		Cap:   func(s []T) int { return cap(s) },
	}
}

// Buffer 跨迭代复用的后备存储（RecyclableBuffer）。
//
// 内部持有 buf 和 spare 两块预分配好的存储，每次 Fetch:
// 清空 buf（容量不变）-> 填充 -> 与 spare 交换 -> 把 spare 整个取走交给调用方。
// 调用方用完后必须 Recycle 归还，下一次 Fetch 才能开始，
// 同一时刻最多只有一次迭代持有这块存储。
//
// 容量只增不减: 两块存储严格交替交出，各自记录归还过的最高容量。
// 某块归还时容量低于它自己的历史最高值，说明某处把容量释放了，
// 下一轮必然重新分配，这是基准本身的 bug，直接 panic。
type Buffer[S any] struct {
	buf, spare S
	store      Store[S]
	held       bool
	// highWater[turn] 是下一次 Fetch 交出的那块存储的记录
	highWater [2]int
	turn      int
}

// NewBuffer 用两块已经分配好的存储构造 Buffer。buf/spare 不能是同一块。
func NewBuffer[S any](buf, spare S, store Store[S]) *Buffer[S] {
	return &Buffer[S]{buf: buf, spare: spare, store: store, highWater: [2]int{store.Cap(buf), store.Cap(spare)}}
}

// NewSliceBuffer 预分配两块容量为 n 的切片
func NewSliceBuffer[T any](n SizeClass) *Buffer[[]T] {
	return NewBuffer(make([]T, 0, int(n)), make([]T, 0, int(n)), SliceStore[T]())
}

// Fetch 交出一块已填充的存储，fill 负责写入元素并返回结果
func (b *Buffer[S]) Fetch(fill func(S) S) S {
	if b.held {
		panic("harness: buffer fetched twice without recycle")
	}
	b.buf = fill(b.store.Clear(b.buf))
	b.buf, b.spare = b.spare, b.buf

	var zero S
	out := b.spare
	b.spare = zero
	b.held = true
	return out
}

// Recycle 归还 Fetch 交出去的存储
func (b *Buffer[S]) Recycle(s S) {
	if !b.held {
		panic("harness: recycle without a matching fetch")
	}
	c := b.store.Cap(s)
	if c < b.highWater[b.turn] {
		panic("harness: recycled buffer lost capacity")
	}
	b.highWater[b.turn] = c
	b.turn ^= 1
	b.spare = b.store.Clear(s)
	b.held = false
}

// Held 当前是否有迭代持有存储
func (b *Buffer[S]) Held() bool { return b.held }

// Cap 两块存储中较大的容量（持有期间只统计留在 Buffer 里的那块）
func (b *Buffer[S]) Cap() int {
	c := b.store.Cap(b.buf)
	if b.held {
		return c
	}
	if s := b.store.Cap(b.spare); s > c {
		return s
	}
	return c
}

// HighWater 两块存储记录中较大的容量
func (b *Buffer[S]) HighWater() int { return max(b.highWater[0], b.highWater[1]) }
