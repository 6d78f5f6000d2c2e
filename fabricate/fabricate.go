// Package fabricate 按下标确定性地构造基准负载。
//
// 所有内容都是下标 i 的纯函数 content[i] = f(i)，f 取 splitmix64 的混合步骤:
// 足够便宜，又是非线性的，编译器没法把逐元素的工作换成一个常量，
// 相邻元素也不会相等到可以被压缩。同样的参数调用两次，得到逐位相同的结果。
//
// 需要随机数的场景（查找目标、变长小向量）一律使用固定种子。
package fabricate

import (
	"errors"
	"fmt"
	"strconv"

	"go-cost-notes/harness"
)

var ErrUnknownShape = errors.New("fabricate: unknown shape")

// Shape 负载的形状
type Shape int

const (
	ShapeBytes  Shape = iota // 平坦的字节缓冲
	ShapeStruct              // 含 N 个元素字段的 struct
	ShapeString              // 长度为 L 的字符串
	ShapeMap                 // K 个键的 map
	ShapeWords               // N 个 uint32
)

func (s Shape) String() string {
	switch s {
	case ShapeBytes:
		return "bytes"
	case ShapeStruct:
		return "struct"
	case ShapeString:
		return "string"
	case ShapeMap:
		return "map"
	case ShapeWords:
		return "words"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Mix splitmix64 的终结步骤
func Mix(i uint64) uint64 {
	z := i + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func Byte(i int) byte     { return byte(Mix(uint64(i))) }
func Word(i int) uint32   { return uint32(Mix(uint64(i)) >> 32) }
func Number(i int) uint64 { return Mix(uint64(i)) }

// Fabricate 按形状和规模构造负载
func Fabricate(shape Shape, n harness.SizeClass) (any, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	switch shape {
	case ShapeBytes:
		return Bytes(n.Int()), nil
	case ShapeStruct:
		return NewPayload(n.Int(), n.Int(), n.Int()), nil
	case ShapeString:
		return Text(n.Int()), nil
	case ShapeMap:
		return Map(n.Int()), nil
	case ShapeWords:
		return Words(n.Int()), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownShape, shape)
}

func Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = Byte(i)
	}
	return out
}

func Words(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = Word(i)
	}
	return out
}

// Text 长度恰好为 l 的可打印字符串
func Text(l int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_"
	buf := make([]byte, l)
	for i := range buf {
		buf[i] = alphabet[Mix(uint64(i))&63]
	}
	return string(buf)
}

// Strings n 个互不相同的字符串，每个都是独立分配的，不共享底层数组
func Strings(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "tag_" + strconv.Itoa(i) + "_" + strconv.FormatUint(Number(i)&0xffff, 16)
	}
	return out
}

// Map k 个键，值由下标确定
func Map(k int) map[string]uint32 {
	out := make(map[string]uint32, k)
	for i := range k {
		out[key(i)] = Word(i)
	}
	return out
}

func key(i int) string {
	return "k" + strconv.Itoa(i)
}
