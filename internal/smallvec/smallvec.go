// Package smallvec 内联/堆混合向量。
//
// 前 C 个元素存放在 Vec 自身的数组里（C 由数组类型 A 决定），不产生堆分配；
// 超过 C 时一次性溢出到堆上的切片，之后按切片的方式增长。
// 溢出后 Clear 保留堆模式和容量，不会退回内联存储。
package smallvec

import (
	"unsafe"
)

// Inline 允许的内联存储
type Inline[T any] interface {
	~[8]T | ~[100]T | ~[128]T
}

type Vec[T any, A Inline[T]] struct {
	inline A
	n      int
	heap   []T
	spill  bool
}

// New 空向量，处于内联模式
func New[T any, A Inline[T]]() Vec[T, A] {
	return Vec[T, A]{}
}

// WithCapacity n 不超过内联容量时保持内联；否则直接按 n 精确分配一次堆空间
func WithCapacity[T any, A Inline[T]](n int) Vec[T, A] {
	var v Vec[T, A]
	if n > len(v.inline) {
		v.heap = make([]T, 0, n)
		v.spill = true
	}
	return v
}

// FromSlice 直接接管一块堆切片，强制进入堆模式（不拷贝、不分配），
// 即使容量小于内联容量也一样
func FromSlice[T any, A Inline[T]](s []T) Vec[T, A] {
	return Vec[T, A]{heap: s, spill: true}
}

// InlineCap 内联容量 C
func (v *Vec[T, A]) InlineCap() int { return len(v.inline) }

func (v *Vec[T, A]) Len() int {
	if v.spill {
		return len(v.heap)
	}
	return v.n
}

func (v *Vec[T, A]) Cap() int {
	if v.spill {
		return cap(v.heap)
	}
	return len(v.inline)
}

// Spilled 是否处于堆模式
func (v *Vec[T, A]) Spilled() bool { return v.spill }

func (v *Vec[T, A]) inlineSlice() []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&v.inline)), len(v.inline))
}

func (v *Vec[T, A]) Push(x T) {
	if v.spill {
		v.heap = append(v.heap, x)
		return
	}
	if v.n < len(v.inline) {
		v.inlineSlice()[v.n] = x
		v.n++
		return
	}
	// 溢出: 内联区满了，一次分配两倍内联容量，再把内联元素搬过去
	h := make([]T, v.n, 2*len(v.inline))
	copy(h, v.inlineSlice()[:v.n])
	v.heap = append(h, x)
	v.spill = true
	v.n = 0
}

// Clear 清空元素，保留当前模式和容量
func (v *Vec[T, A]) Clear() {
	if v.spill {
		v.heap = v.heap[:0]
		return
	}
	v.n = 0
}

// Items 当前元素的视图，内联模式下指向 Vec 自身，Vec 被修改后失效
func (v *Vec[T, A]) Items() []T {
	if v.spill {
		return v.heap
	}
	return v.inlineSlice()[:v.n]
}

// Last 最后一个元素
func (v *Vec[T, A]) Last() (T, bool) {
	var zero T
	n := v.Len()
	if n == 0 {
		return zero, false
	}
	return v.Items()[n-1], true
}

// IntoSlice 把元素交给一个普通切片。
// 堆模式直接交出底层切片（零拷贝）；内联模式需要分配并拷贝。Vec 随后为空。
func (v *Vec[T, A]) IntoSlice() []T {
	var out []T
	if v.spill {
		out = v.heap
		v.heap = nil
	} else {
		out = make([]T, v.n)
		copy(out, v.inlineSlice()[:v.n])
	}
	v.n = 0
	v.spill = false
	return out
}
