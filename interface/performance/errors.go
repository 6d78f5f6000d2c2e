package performance

import (
	"errors"
	"fmt"
	"testing"

	"go-cost-notes/harness"
)

// ErrNotFound 预先分配好的哨兵错误，返回它不产生任何分配
var ErrNotFound = errors.New("not found")

// NotFoundError 携带上下文的错误类型，按值放进 error 接口时需要装箱
type NotFoundError struct {
	ID int
}

func (e NotFoundError) Error() string { return fmt.Sprintf("%d not found", e.ID) }

func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// 偶数成功，奇数走错误分支

//go:noinline
func LookupSentinel(i int) (int, error) {
	if i%2 == 0 {
		return i, nil
	}
	return 0, ErrNotFound
}

//go:noinline
func LookupTyped(i int) (int, error) {
	if i%2 == 0 {
		return i, nil
	}
	return 0, NotFoundError{ID: i}
}

// LookupWrapped 错误分支格式化消息并包装哨兵错误，每次都分配
//
//go:noinline
func LookupWrapped(i int) (int, error) {
	if i%2 == 0 {
		return i, nil
	}
	return 0, fmt.Errorf("user %d: %w", i, ErrNotFound)
}

// SumLookups 调用 n 次，累加成功的结果，并统计能被 errors.Is 识别的失败
func SumLookups(lookup func(int) (int, error), n int) (sum, misses int) {
	for i := range harness.Observe(n) {
		x, err := lookup(harness.Observe(i))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				misses++
			}
			continue
		}
		sum += x
	}
	return sum, misses
}

var (
	ErrorVariants = []harness.Variant{"sentinel", "typed", "wrapped"}
	ErrorSizes    = harness.MustSizes(50000)
)

func lookupOf(v harness.Variant) func(int) (int, error) {
	switch v {
	case "sentinel":
		return LookupSentinel
	case "typed":
		return LookupTyped
	case "wrapped":
		return LookupWrapped
	}
	return nil
}

// ErrorBenches 一半调用走错误分支
func ErrorBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("error_path", harness.UnitElements, ErrorVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			lookup := lookupOf(v)
			if lookup == nil {
				return nil
			}
			return harness.Plain(func() {
				sum, misses := SumLookups(lookup, n.Int())
				harness.Consume(sum + misses)
			})
		})
}
