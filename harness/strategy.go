package harness

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy 无法识别的所有权策略名
var ErrUnknownStrategy = errors.New("harness: unknown ownership strategy")

// Strategy 值跨越一层边界（repository -> use case -> controller）时的传递方式
//
// Go 没有所有权系统，这里按 Go 自己的语义落地:
//   - Move: 按值传递 struct，只拷贝头部（slice/map/string 仍共享底层数据），调用方此后不再使用
//   - Clone: 深拷贝一份独立的数据再传递
//   - Borrow: 传只读指针
//   - BorrowMut: 传指针并允许被调方修改
//   - BoxMove: 先把值放到堆上（new），再传递这个指针
type Strategy int

const (
	Move Strategy = iota
	Clone
	Borrow
	BorrowMut
	BoxMove
)

var strategyNames = [...]string{
	Move:      "move",
	Clone:     "clone",
	Borrow:    "borrow",
	BorrowMut: "borrow-mut",
	BoxMove:   "box-move",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Strategies 返回全部策略，顺序固定
func Strategies() []Strategy {
	return []Strategy{Move, Clone, Borrow, BorrowMut, BoxMove}
}

func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Mode 混合容器的运行模式
type Mode int

const (
	// Natural 规模决定容器留在内联存储还是溢出到堆
	Natural Mode = iota
	// ForcedHeap 即便规模足够小也强制使用堆存储，用于零拷贝装箱之类的场景
	ForcedHeap
)

func (m Mode) String() string {
	if m == ForcedHeap {
		return "forced-heap"
	}
	return "natural"
}

// ContainerKind 被测的存储表示
type ContainerKind int

const (
	Slice    ContainerKind = iota // 普通切片，纯堆
	SmallVec                      // 内联 128 个元素，之后溢出
	TinyVec                       // 内联 100 个元素，之后溢出
	TinyVec8                      // 内联 8 个元素，用于大量小向量
	Map                           // 内置 map，纯堆
	SmallMap                      // 内联 128 个键值对，之后溢出到内置 map
	ArrayMap                      // 固定 128 容量，满了不再接受
)

var kindInfo = [...]struct {
	name   string
	inline int
}{
	Slice:    {"slice", 0},
	SmallVec: {"smallvec128", 128},
	TinyVec:  {"tinyvec100", 100},
	TinyVec8: {"tinyvec8", 8},
	Map:      {"map", 0},
	SmallMap: {"smallmap128", 128},
	ArrayMap: {"arraymap128", 128},
}

func (k ContainerKind) valid() bool { return k >= 0 && int(k) < len(kindInfo) }

func (k ContainerKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("ContainerKind(%d)", int(k))
	}
	return kindInfo[k].name
}

// InlineCap 不分配堆内存即可容纳的元素个数，纯堆容器为 0
func (k ContainerKind) InlineCap() int {
	if !k.valid() {
		return 0
	}
	return kindInfo[k].inline
}

// SpillThreshold 等于内联容量：元素个数超过它时发生溢出
func (k ContainerKind) SpillThreshold() int { return k.InlineCap() }

// Fixed 固定容量的容器不会溢出，超过容量的插入被拒绝
func (k ContainerKind) Fixed() bool { return k == ArrayMap }

// Hybrid 是否为内联/堆混合容器
func (k ContainerKind) Hybrid() bool { return k.InlineCap() > 0 && !k.Fixed() }

// Spills 在自然模式下装入 n 个元素是否会离开内联存储
func (k ContainerKind) Spills(n SizeClass) bool {
	if k.Fixed() {
		return false
	}
	return int(n) > k.InlineCap()
}

// ExpectedAllocs 以精确预分配的方式装入 n 个元素时应当发生的堆分配次数。
//
// 混合容器 n <= C 时为 0，n > C 时恰好 1 次；纯堆容器 n > 0 时 1 次。
// 内置 map 的桶结构由运行时决定，不在此列，返回 -1。
func (k ContainerKind) ExpectedAllocs(n SizeClass) int {
	switch {
	case k == Map || k == SmallMap && k.Spills(n):
		return -1
	case k.Fixed():
		return 0
	case int(n) == 0:
		return 0
	case k.Spills(n):
		return 1
	case k.InlineCap() > 0:
		return 0
	}
	return 1
}

// MaxGrowAllocs 从空容器按几何增长装入 n 个元素时分配次数的上界: O(log N)。
//
// 按 runtime.growslice 的扩容系数模拟（256 以下翻倍，之后约 1.25 倍），
// 运行时还会向上取整到 size class，实际次数只会更少。
func (k ContainerKind) MaxGrowAllocs(n SizeClass) int {
	if n <= 0 || !k.Spills(n) {
		return 0
	}
	c := 1
	if k.Hybrid() {
		c = 2 * k.InlineCap()
	}
	allocs := 1
	for c < int(n) {
		if c < 256 {
			c *= 2
		} else {
			c += (c + 3*256) >> 2
		}
		allocs++
	}
	return allocs
}
