package performance

import (
	"testing"

	"go-cost-notes/harness"
)

// Adder 定义一个简单的接口用于性能测试
type Adder interface {
	Add(a, b int) int
}

// DirectAdder 直接实现加法
type DirectAdder struct{}

//go:noinline
func (d DirectAdder) Add(a, b int) int { return a + b }

// Describer 用于 type switch 测试
type Describer interface {
	Describe() string
}

type IntType struct{ V int }

func (t IntType) Describe() string { return "int" }

type StrType struct{ V string }

func (t StrType) Describe() string { return "string" }

type FloatType struct{ V float64 }

func (t FloatType) Describe() string { return "float" }

// 下面四种调用各做 n 次，接口值每次都经过屏障，类型断言和 type switch 不能提到循环外

//go:noinline
func AddDirect(d DirectAdder, n int) int {
	acc := 0
	for i := range harness.Observe(n) {
		acc = harness.Observe(d).Add(acc, i)
	}
	return acc
}

//go:noinline
func AddInterface(a Adder, n int) int {
	acc := 0
	for i := range harness.Observe(n) {
		acc = harness.Observe(a).Add(acc, i)
	}
	return acc
}

//go:noinline
func AddAsserted(x any, n int) int {
	acc := 0
	for i := range harness.Observe(n) {
		if a, ok := harness.Observe(x).(Adder); ok {
			acc = a.Add(acc, i)
		}
	}
	return acc
}

//go:noinline
func DescribeSwitch(d Describer, n int) int {
	acc := 0
	for range harness.Observe(n) {
		switch v := harness.Observe(d).(type) {
		case IntType:
			acc += v.V
		case StrType:
			acc += len(v.V)
		case FloatType:
			acc += int(v.V)
		}
	}
	return acc
}

// UserProfile 历史记录放在堆上，按值传递只拷贝指针
type UserProfile struct {
	ID      int32
	Name    string
	Email   string
	History *[1024]uint64
}

//go:noinline
func NewUserProfile(i int) UserProfile {
	h := new([1024]uint64)
	for j := range h {
		h[j] = uint64(i)
	}
	return UserProfile{ID: int32(i), Name: "Alice", Email: "alice@example.com", History: h}
}

// Repo 仓储接口，动态分派和泛型约束共用
type Repo interface {
	FindByID(id int32) (*UserProfile, bool)
	Save(p UserProfile)
}

// InMemoryRepo 既实现 Repo，也提供同样逻辑的普通方法（不经过任何接口）
type InMemoryRepo struct {
	data map[int32]*UserProfile
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{data: make(map[int32]*UserProfile)}
}

//go:noinline
func (r *InMemoryRepo) FindByIDPure(id int32) (*UserProfile, bool) {
	p, ok := r.data[id]
	return p, ok
}

//go:noinline
func (r *InMemoryRepo) SavePure(p UserProfile) {
	r.data[p.ID] = &p
}

//go:noinline
func (r *InMemoryRepo) FindByID(id int32) (*UserProfile, bool) {
	p, ok := r.data[id]
	return p, ok
}

//go:noinline
func (r *InMemoryRepo) Save(p UserProfile) {
	r.data[p.ID] = &p
}

// UseCasePure 直接持有具体类型，调用普通方法
type UseCasePure struct {
	repo *InMemoryRepo
}

func NewUseCasePure(repo *InMemoryRepo) *UseCasePure { return &UseCasePure{repo: repo} }

//go:noinline
func (u *UseCasePure) SumUsers(n int) uint64 {
	n = harness.Observe(n)
	for i := range n {
		u.repo.SavePure(NewUserProfile(harness.Observe(i)))
	}
	var sum uint64
	for i := range n {
		if p, ok := u.repo.FindByIDPure(int32(i)); ok {
			sum += harness.Observe(p.History[0])
		}
	}
	return sum
}

// UseCaseStatic 通过泛型约束调用。
// Go 按 GC shape 实例化泛型，所有指针类型共用一份代码，方法经字典间接调用，
// 它不等价于单态化后的静态分派。
type UseCaseStatic[R Repo] struct {
	repo R
}

func NewUseCaseStatic[R Repo](repo R) *UseCaseStatic[R] { return &UseCaseStatic[R]{repo: repo} }

//go:noinline
func (u *UseCaseStatic[R]) SumUsers(n int) uint64 {
	n = harness.Observe(n)
	for i := range n {
		u.repo.Save(NewUserProfile(harness.Observe(i)))
	}
	var sum uint64
	for i := range n {
		if p, ok := u.repo.FindByID(int32(i)); ok {
			sum += harness.Observe(p.History[0])
		}
	}
	return sum
}

// UseCaseDynamic 通过接口调用
type UseCaseDynamic struct {
	repo Repo
}

func NewUseCaseDynamic(repo Repo) *UseCaseDynamic { return &UseCaseDynamic{repo: repo} }

//go:noinline
func (u *UseCaseDynamic) SumUsers(n int) uint64 {
	n = harness.Observe(n)
	for i := range n {
		u.repo.Save(NewUserProfile(harness.Observe(i)))
	}
	var sum uint64
	for i := range n {
		if p, ok := u.repo.FindByID(int32(i)); ok {
			sum += harness.Observe(p.History[0])
		}
	}
	return sum
}

// Counter 只剩分派本身的最小场景
type Counter interface {
	Add(x uint64)
	Get() uint64
}

type PlainCounter struct{ n uint64 }

//go:noinline
func (c *PlainCounter) Add(x uint64) { c.n += x }

//go:noinline
func (c *PlainCounter) Get() uint64 { return c.n }

//go:noinline
func RunDirect(c *PlainCounter, n int) uint64 {
	for i := range harness.Observe(n) {
		c.Add(harness.Observe(uint64(i)))
	}
	return c.Get()
}

//go:noinline
func RunStatic[C Counter](c C, n int) uint64 {
	for i := range harness.Observe(n) {
		c.Add(harness.Observe(uint64(i)))
	}
	return c.Get()
}

//go:noinline
func RunDynamic(c Counter, n int) uint64 {
	for i := range harness.Observe(n) {
		c.Add(harness.Observe(uint64(i)))
	}
	return c.Get()
}

var (
	UseCaseVariants = []harness.Variant{"pure", "static", "dynamic"}
	CounterVariants = []harness.Variant{"direct", "static", "dynamic"}

	UseCaseSizes = harness.MustSizes(1000)
	CounterSizes = harness.MustSizes(1000, 100000)
)

var (
	TypeAssertVariants = []harness.Variant{"direct", "interface", "assertion", "type-switch"}
	TypeAssertSizes    = harness.MustSizes(1000)
)

// TypeAssertBenches 直接调用、接口调用、断言后调用、type switch
func TypeAssertBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("type_assert", harness.UnitElements, TypeAssertVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			var iface Adder = DirectAdder{}
			var x any = DirectAdder{}
			var d Describer = IntType{V: 42}
			switch v {
			case "direct":
				return harness.Plain(func() { harness.Consume(AddDirect(DirectAdder{}, n.Int())) })
			case "interface":
				return harness.Plain(func() { harness.Consume(AddInterface(iface, n.Int())) })
			case "assertion":
				return harness.Plain(func() { harness.Consume(AddAsserted(x, n.Int())) })
			case "type-switch":
				return harness.Plain(func() { harness.Consume(DescribeSwitch(d, n.Int())) })
			}
			return nil
		})
}

// UseCaseBenches 每次操作新建仓储并写入、读出 N 个用户。
// 构造和 map 写入本身就是被测流程的一部分，三种变体的这部分成本相同，差别只在分派。
func UseCaseBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("usecase_dispatch", harness.UnitElements, UseCaseVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			var run func() uint64
			switch v {
			case "pure":
				run = func() uint64 { return NewUseCasePure(NewInMemoryRepo()).SumUsers(n.Int()) }
			case "static":
				run = func() uint64 { return NewUseCaseStatic(NewInMemoryRepo()).SumUsers(n.Int()) }
			case "dynamic":
				run = func() uint64 { return NewUseCaseDynamic(NewInMemoryRepo()).SumUsers(n.Int()) }
			default:
				return nil
			}
			return harness.Plain(func() { harness.Consume(run()) })
		})
}

// CounterBenches 预先建好计数器，只测 N 次 Add 的分派
func CounterBenches(sizes []harness.SizeClass) []harness.Bench {
	return harness.Expand("counter_dispatch", harness.UnitElements, CounterVariants, sizes,
		func(v harness.Variant, n harness.SizeClass) func(b *testing.B) {
			c := &PlainCounter{}
			var iface Counter = c
			switch v {
			case "direct":
				return harness.Plain(func() { harness.Consume(RunDirect(c, n.Int())) })
			case "static":
				return harness.Plain(func() { harness.Consume(RunStatic(c, n.Int())) })
			case "dynamic":
				return harness.Plain(func() { harness.Consume(RunDynamic(iface, n.Int())) })
			}
			return nil
		})
}
