package harness

import (
	"errors"
	"flag"
	"fmt"
)

// ErrNoBenchFlags testing.Init 之前 -test.* 参数还没有注册
var ErrNoBenchFlags = errors.New("harness: test flags not registered, call testing.Init first")

// SetBenchTime 修改 -test.benchtime（如 "2s"、"200x"），返回恢复原值的函数。
// 单测里用固定次数让 testing.Benchmark 跑得快且可重复；命令行里用配置覆盖默认的 1s。
func SetBenchTime(v string) (restore func(), err error) {
	f := flag.Lookup("test.benchtime")
	if f == nil {
		return nil, ErrNoBenchFlags
	}
	old := f.Value.String()
	if err := flag.Set("test.benchtime", v); err != nil {
		return nil, fmt.Errorf("harness: set benchtime %q: %w", v, err)
	}
	return func() { _ = flag.Set("test.benchtime", old) }, nil
}
