package harness

// 优化屏障
//
// 编译器一旦证明某个计算的结果没人使用，或者输入是编译期常量，
// 就可能把被测操作整个删掉或者常量折叠，这时 benchmark 测到的只是一个空循环。
// Observe/Consume 都禁止内联，编译器看不到函数体，只能老老实实地
// 计算出实参并完成调用，代价是每次调用固定的几个周期，对所有分支一视同仁。
//
// 用法:
//   - 所有喂给被测操作的输入都先经过 Observe，防止被当作常量
//   - 所有从被测操作拿到的输出都交给 Consume（或再 Observe 一次），防止被当作死代码
//
// Go 1.24 的 b.Loop() 本身也会保持循环体里的调用参数和返回值存活，
// 但它管不到循环体外构造的输入，所以屏障仍然需要。

// Observe 逻辑上是恒等函数，对优化器不透明
//
//go:noinline
func Observe[T any](v T) T {
	return v
}

// Consume 吞掉一个值，让产生它的计算不能被消除
//
//go:noinline
func Consume[T any](v T) {
	_ = v
}
