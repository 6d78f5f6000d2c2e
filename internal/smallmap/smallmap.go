// Package smallmap 内联/堆混合的小 map。
//
// 前 C 个键值对顺序存放在 Map 自身的数组里，查找是线性扫描；
// 超过 C 时把全部键值对搬进内置 map（溢出）。NewFixed 构造的 Map 永不溢出，
// 满了之后 Insert 返回 false，对应固定容量的栈上 map。
package smallmap

import (
	"unsafe"
)

type Entry[K comparable, V any] struct {
	Key K
	Val V
}

// Inline 允许的内联存储
type Inline[K comparable, V any] interface {
	~[8]Entry[K, V] | ~[16]Entry[K, V] | ~[32]Entry[K, V] | ~[64]Entry[K, V] | ~[128]Entry[K, V]
}

type Map[K comparable, V any, A Inline[K, V]] struct {
	inline A
	n      int
	heap   map[K]V
	fixed  bool
}

// New 可溢出的混合 map
func New[K comparable, V any, A Inline[K, V]]() Map[K, V, A] {
	return Map[K, V, A]{}
}

// NewFixed 固定容量，不溢出
func NewFixed[K comparable, V any, A Inline[K, V]]() Map[K, V, A] {
	return Map[K, V, A]{fixed: true}
}

func (m *Map[K, V, A]) entries() []Entry[K, V] {
	return unsafe.Slice((*Entry[K, V])(unsafe.Pointer(&m.inline)), len(m.inline))
}

func (m *Map[K, V, A]) InlineCap() int { return len(m.inline) }

func (m *Map[K, V, A]) Spilled() bool { return m.heap != nil }

func (m *Map[K, V, A]) Len() int {
	if m.heap != nil {
		return len(m.heap)
	}
	return m.n
}

// Insert 插入或覆盖。固定容量的 Map 满了以后插入新键返回 false。
func (m *Map[K, V, A]) Insert(k K, v V) bool {
	if m.heap != nil {
		m.heap[k] = v
		return true
	}
	es := m.entries()
	for i := range m.n {
		if es[i].Key == k {
			es[i].Val = v
			return true
		}
	}
	if m.n < len(es) {
		es[m.n] = Entry[K, V]{Key: k, Val: v}
		m.n++
		return true
	}
	if m.fixed {
		return false
	}
	h := make(map[K]V, 2*len(es))
	for _, e := range es[:m.n] {
		h[e.Key] = e.Val
	}
	h[k] = v
	m.heap = h
	m.n = 0
	return true
}

func (m *Map[K, V, A]) Get(k K) (V, bool) {
	if m.heap != nil {
		v, ok := m.heap[k]
		return v, ok
	}
	es := m.entries()
	for i := range m.n {
		if es[i].Key == k {
			return es[i].Val, true
		}
	}
	var zero V
	return zero, false
}

// Clear 清空。溢出后保留内置 map（clear 不释放桶）。
func (m *Map[K, V, A]) Clear() {
	if m.heap != nil {
		clear(m.heap)
		return
	}
	var zero Entry[K, V]
	es := m.entries()
	for i := range m.n {
		es[i] = zero
	}
	m.n = 0
}
