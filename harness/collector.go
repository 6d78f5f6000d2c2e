package harness

import (
	"testing"
)

// Result 一个单元的计时结果
type Result struct {
	Name        string  `json:"name"`
	N           int     `json:"n"`
	NsPerOp     int64   `json:"ns_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	NsPerElem   float64 `json:"ns_per_elem,omitempty"`
	MBPerSec    float64 `json:"mb_per_sec,omitempty"`
}

// Collector 在 go test 之外运行矩阵: 每个 Run 交给 testing.Benchmark 执行并记录结果。
//
// 调用前需要先执行 testing.Init()，-test.benchtime 之类的参数才会生效。
type Collector struct {
	// OnResult 每完成一个单元回调一次，可为空
	OnResult func(Result)

	results []Result
}

func (c *Collector) Run(name string, f func(b *testing.B)) bool {
	r := testing.Benchmark(f)
	res := Result{
		Name:        name,
		N:           r.N,
		NsPerOp:     r.NsPerOp(),
		AllocsPerOp: r.AllocsPerOp(),
		BytesPerOp:  r.AllocedBytesPerOp(),
		NsPerElem:   r.Extra["ns/elem"],
	}
	if r.Bytes > 0 && r.T > 0 {
		res.MBPerSec = float64(r.Bytes) * float64(r.N) / 1e6 / r.T.Seconds()
	}
	c.results = append(c.results, res)
	if c.OnResult != nil {
		c.OnResult(res)
	}
	return r.N > 0
}

// Results 按注册顺序返回全部结果
func (c *Collector) Results() []Result {
	return append([]Result(nil), c.results...)
}
