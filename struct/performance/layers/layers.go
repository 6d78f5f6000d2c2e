// Package layers 对象穿过 controller -> use case -> repository 三层转发与只穿过一层的成本对比。
//
// 每一层都是一次禁止内联的真实调用。纯转发（move/borrow）的结果应该与层数基本无关，
// 每层多出的只是一次调用和 struct 头部的拷贝；clone 的成本由被复制的元素数决定，与层数无关。
package layers

import (
	"fmt"
	"testing"

	"go-cost-notes/fabricate"
	"go-cost-notes/harness"
)

//go:noinline
func OneLayer[T any](p T) T { return p }

//go:noinline
func Repository[T any](p T) T { return p }

//go:noinline
func UseCase[T any](p T) T { return Repository(p) }

//go:noinline
func Controller[T any](p T) T { return UseCase(p) }

type payload[T any] interface {
	*T
	Clone() T
}

// clone 版本: 只有 repository 真正复制，上面两层原样转发复制出来的值

//go:noinline
func OneLayerClone[T any, P payload[T]](p P) T { return p.Clone() }

//go:noinline
func RepositoryClone[T any, P payload[T]](p P) T { return p.Clone() }

//go:noinline
func UseCaseClone[T any, P payload[T]](p P) T { return RepositoryClone[T, P](p) }

//go:noinline
func ControllerClone[T any, P payload[T]](p P) T { return UseCaseClone[T, P](p) }

// Case 一组负载规模
type Case struct {
	Bytes, Tags, Keys int
}

var Cases = []Case{
	{1024, 8, 8},
	{8192, 16, 16},
	{65536, 64, 64},
}

func caseOf(n harness.SizeClass) (Case, bool) {
	for _, c := range Cases {
		if c.Bytes == n.Int() {
			return c, true
		}
	}
	return Case{}, false
}

// Sizes 矩阵的规模取每组负载的字节数
func Sizes() []harness.SizeClass {
	out := make([]harness.SizeClass, len(Cases))
	for i, c := range Cases {
		out[i] = harness.SizeClass(c.Bytes)
	}
	return out
}

type Variant struct {
	Big      bool
	Strategy harness.Strategy
	Layers   int
}

func (v Variant) String() string {
	name := "payload"
	if v.Big {
		name = "payload_big"
	}
	return fmt.Sprintf("%s-%s-%d", name, v.Strategy, v.Layers)
}

// Strategies 层间转发比较的四种方式
var Strategies = []harness.Strategy{harness.Move, harness.Clone, harness.Borrow, harness.BoxMove}

func Variants() []Variant {
	var out []Variant
	for _, big := range []bool{false, true} {
		for _, s := range Strategies {
			for _, layers := range []int{1, 3} {
				out = append(out, Variant{Big: big, Strategy: s, Layers: layers})
			}
		}
	}
	return out
}

// Bench 构造一种负载的被测闭包。
//
// move/box-move 用形式 B，每次交给转发链一个新构造的对象，构造不计时；
// clone/borrow 作用在同一个预先构造的对象上。
// 结果只交给 harness.Consume: 经由类型参数调用方法会让实参逃逸到堆上。
func Bench[T any, P payload[T]](newT func(bytes, tags, keys int) T, c Case, s harness.Strategy, layers int) func(b *testing.B) {
	fwd, fwdPtr, fwdClone := OneLayer[T], OneLayer[*T], OneLayerClone[T, P]
	if layers == 3 {
		fwd, fwdPtr, fwdClone = Controller[T], Controller[*T], ControllerClone[T, P]
	}
	setup := func() T { return newT(c.Bytes, c.Tags, c.Keys) }

	switch s {
	case harness.Move:
		return harness.Batched(setup, fwd)
	case harness.BoxMove:
		return harness.Batched(setup, func(p T) *T { return fwdPtr(box(p)) })
	}

	fixture := setup()
	switch s {
	case harness.Clone:
		return harness.Plain(func() { harness.Consume(fwdClone(harness.Observe(&fixture))) })
	case harness.Borrow:
		return harness.Plain(func() { harness.Consume(fwdPtr(harness.Observe(&fixture))) })
	}
	return nil
}

//go:noinline
func box[T any](p T) *T {
	b := new(T)
	*b = p
	return b
}

func build(v Variant, n harness.SizeClass) func(b *testing.B) {
	c, ok := caseOf(n)
	if !ok {
		return nil
	}
	if v.Big {
		return Bench(fabricate.NewPayloadBig, c, v.Strategy, v.Layers)
	}
	return Bench(fabricate.NewPayload, c, v.Strategy, v.Layers)
}

// Benches layer_moves 矩阵，吞吐按负载字节数计
func Benches() []harness.Bench {
	return harness.Expand("layer_moves", harness.UnitBytes, Variants(), Sizes(), build)
}
