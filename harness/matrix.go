package harness

import (
	"fmt"
	"testing"
)

// Cell 矩阵中的一个被测场景: (变体, 规模)。展开时构造，之后只读。
type Cell struct {
	Group   string
	Variant string
	Size    SizeClass
	Unit    Unit
}

// Label 稳定且可读的名字，形如 owned_move/N=100/slice
func (c Cell) Label() string {
	if c.Group == "" {
		return fmt.Sprintf("N=%d/%s", int(c.Size), c.Variant)
	}
	return fmt.Sprintf("%s/N=%d/%s", c.Group, int(c.Size), c.Variant)
}

// Throughput 每次操作处理的元素数或字节数，没有单位时为 0
func (c Cell) Throughput() int64 {
	if c.Unit == UnitNone {
		return 0
	}
	return int64(c.Size)
}

// Expand 计算 variants × sizes 的笛卡尔积。
//
// 顺序固定: 外层按 sizes 给出的顺序，内层按 variants 的顺序，
// 与报告里按规模分组的习惯一致。build 为每个单元构造被测闭包，
// 返回 nil 表示该组合不适用（例如固定容量容器遇到超过容量的规模），直接跳过。
func Expand[V fmt.Stringer](group string, unit Unit, variants []V, sizes []SizeClass, build func(v V, n SizeClass) func(b *testing.B)) []Bench {
	out := make([]Bench, 0, len(variants)*len(sizes))
	for _, n := range sizes {
		for _, v := range variants {
			fn := build(v, n)
			if fn == nil {
				continue
			}
			out = append(out, Bench{
				Cell: Cell{Group: group, Variant: v.String(), Size: n, Unit: unit},
				Fn:   fn,
			})
		}
	}
	return out
}

// Variant 用字符串名字做变体，适合一次性的组合
type Variant string

func (v Variant) String() string { return string(v) }

// Cells 只取出单元，用于列出矩阵
func Cells(benches []Bench) []Cell {
	out := make([]Cell, len(benches))
	for i, b := range benches {
		out[i] = b.Cell
	}
	return out
}
