// Package suite 汇总所有基准矩阵，供命令行运行器在 go test 之外列出和执行。
package suite

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	arrayperf "go-cost-notes/array/performance"
	loopperf "go-cost-notes/for-and-range/performance"
	"go-cost-notes/gc/performance"
	"go-cost-notes/harness"
	ifaceperf "go-cost-notes/interface/performance"
	mapperf "go-cost-notes/map/performance"
	"go-cost-notes/slice/performance/fill"
	"go-cost-notes/slice/performance/move"
	"go-cost-notes/slice/performance/tiny"
	concatperf "go-cost-notes/string-concat/performance"
	"go-cost-notes/struct/performance/layers"
	"go-cost-notes/struct/performance/mapping"
	memalign "go-cost-notes/struct/performance/mem-align"
	valuevspointer "go-cost-notes/struct/performance/value-vs-pointer"
)

// Suite 一组同主题的矩阵。Build 延迟执行，部分矩阵的夹具很大。
type Suite struct {
	Name  string
	Build func(sizes []harness.SizeClass) []harness.Bench
}

// sized 用配置的规模覆盖默认规模
func sized(def []harness.SizeClass, build func([]harness.SizeClass) []harness.Bench) func([]harness.SizeClass) []harness.Bench {
	return func(sizes []harness.SizeClass) []harness.Bench {
		if len(sizes) == 0 {
			sizes = def
		}
		return build(sizes)
	}
}

// fixed 规模由矩阵自身决定，不受配置影响
func fixed(build func() []harness.Bench) func([]harness.SizeClass) []harness.Bench {
	return func([]harness.SizeClass) []harness.Bench { return build() }
}

// All 全部矩阵，顺序固定
func All() []Suite {
	return []Suite{
		{"make_and_fill", sized(fill.DefaultSizes, fill.Benches)},
		{"move", sized(move.DefaultSizes, move.Benches)},
		{"many_tiny", fixed(func() []harness.Bench { return tiny.Benches(tiny.Reps) })},
		{"map_make_and_fill", fixed(func() []harness.Bench {
			return mapperf.FillBenches(append(append([]harness.SizeClass(nil), mapperf.SmallSizes...), mapperf.LargeSizes...))
		})},
		{"search_absent", fixed(func() []harness.Bench { return mapperf.SearchBenches(mapperf.SearchSizes) })},
		{"flat_value_vs_pointer", fixed(func() []harness.Bench { return valuevspointer.FlatBenches(valuevspointer.FlatSizes) })},
		{"ownership", fixed(valuevspointer.Benches)},
		{"dto_mapping", fixed(mapping.Benches)},
		{"array_return", fixed(func() []harness.Bench { return arrayperf.ArrayBenches(arrayperf.ArraySizes) })},
		{"scalar_pass", fixed(func() []harness.Bench { return arrayperf.ScalarBenches(arrayperf.ScalarSizes) })},
		{"layer_moves", fixed(layers.Benches)},
		{"usecase_dispatch", fixed(func() []harness.Bench { return ifaceperf.UseCaseBenches(ifaceperf.UseCaseSizes) })},
		{"type_assert", fixed(func() []harness.Bench { return ifaceperf.TypeAssertBenches(ifaceperf.TypeAssertSizes) })},
		{"counter_dispatch", fixed(func() []harness.Bench { return ifaceperf.CounterBenches(ifaceperf.CounterSizes) })},
		{"error_path", fixed(func() []harness.Bench { return ifaceperf.ErrorBenches(ifaceperf.ErrorSizes) })},
		{"box_any", fixed(ifaceperf.BoxBenches)},
		{"buffer_source", fixed(func() []harness.Bench { return performance.PoolBenches(performance.PoolSizes) })},
		{"record_layout", fixed(func() []harness.Bench { return performance.LayoutBenches(performance.LayoutSizes) })},
		{"loop_style", fixed(func() []harness.Bench { return loopperf.LoopBenches(loopperf.LoopSizes) })},
		{"range_large_items", fixed(func() []harness.Bench { return loopperf.ItemBenches(loopperf.ItemSizes) })},
		{"field_order", fixed(func() []harness.Bench { return memalign.FieldOrderBenches(memalign.FieldOrderSizes) })},
		{"string_concat", fixed(func() []harness.Bench { return concatperf.ConcatBenches(concatperf.ConcatSizes) })},
	}
}

// Cells 列出全部单元。每个矩阵都要构造一遍，夹具也会一并建好，
// 所以各矩阵并发构造，结果仍按 All 的顺序拼接。
func Cells(sizes []harness.SizeClass) []harness.Cell {
	suites := All()
	built := make([][]harness.Cell, len(suites))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range suites {
		g.Go(func() error {
			built[i] = harness.Cells(s.Build(sizes))
			return nil
		})
	}
	_ = g.Wait()

	var out []harness.Cell
	for _, cells := range built {
		out = append(out, cells...)
	}
	return out
}
