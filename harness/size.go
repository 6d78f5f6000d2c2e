package harness

import (
	"errors"
	"fmt"
)

// ErrNegativeSize 规模参数小于 0
var ErrNegativeSize = errors.New("harness: negative size class")

// SizeClass 一个基准用例的规模参数 N（元素个数或字节数）。
//
// N 同时决定负载的形状和容器的预分配容量，必须满足 N >= 0。
type SizeClass int

func (n SizeClass) Validate() error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSize, int(n))
	}
	return nil
}

// Int 便于在 make/循环中直接使用
func (n SizeClass) Int() int { return int(n) }

// Sizes 把一组整数转换为 SizeClass，任意一个非法即返回错误
func Sizes(ns ...int) ([]SizeClass, error) {
	out := make([]SizeClass, 0, len(ns))
	for _, n := range ns {
		s := SizeClass(n)
		if err := s.Validate(); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// MustSizes 用于包级别的固定规模表
func MustSizes(ns ...int) []SizeClass {
	out, err := Sizes(ns...)
	if err != nil {
		panic(err)
	}
	return out
}

// Unit 吞吐量的计量单位
type Unit int

const (
	UnitNone Unit = iota
	UnitElements
	UnitBytes
)

func (u Unit) String() string {
	switch u {
	case UnitNone:
		return "none"
	case UnitElements:
		return "elements"
	case UnitBytes:
		return "bytes"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}
