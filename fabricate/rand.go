package fabricate

import (
	"math/rand/v2"
)

// 固定种子，保证查找目标之类的随机输入在每次运行中完全一致
const (
	seedHi = 0x5eed_0001_c0ff_ee00
	seedLo = 0x0123_4567_89ab_cdef
)

// NewRand 固定种子的 PCG 生成器，每次调用都从同一个状态开始
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(seedHi, seedLo))
}

// LCG 单步线性同余，产生 [0, k] 内的规模，用于 "有时很小" 的变长场景
type LCG uint64

func (x *LCG) Next(k int) int {
	*x = LCG(uint64(*x)*6364136223846793005 + 1)
	return int((uint64(*x) >> 32) % uint64(k+1))
}

// TinySizes 预先算好 reps 个 [0, k] 内的规模，避免随机数生成落进计时区
func TinySizes(seed uint64, reps, k int) []int {
	x := LCG(seed)
	out := make([]int, reps)
	for i := range out {
		out[i] = x.Next(k)
	}
	return out
}

// SearchTargets 从 [0, n) 中取 m 个固定种子的查找目标
func SearchTargets(n, m int) []int {
	if n <= 0 {
		return make([]int, 0)
	}
	r := NewRand()
	out := make([]int, m)
	for i := range out {
		out[i] = r.IntN(n)
	}
	return out
}
