// Package config 命令行运行器的配置，由 go-zero conf 从 yaml 加载。
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	"go-cost-notes/harness"
)

// ErrBadBenchTime BenchTime 既不是时长也不是 "<次数>x"
var ErrBadBenchTime = errors.New("config: invalid bench time")

type Config struct {
	// Sizes 覆盖按规模展开的矩阵（make_and_fill、owned_move 等）的默认规模，为空时用各自的默认值
	Sizes []int `json:",optional"`
	// BenchTime 传给 -test.benchtime，如 1s、500ms、200x
	BenchTime string `json:",default=1s"`
	// Gops 运行期间启动 gops agent，便于观察长时间运行的进程
	Gops bool `json:",default=false"`
	// Output 结果文件路径（JSON），为空则只打日志
	Output string `json:",optional"`
	Log    logx.LogConf
}

// Load 读取配置文件并校验
func Load(path string) (Config, error) {
	var c Config
	if err := conf.Load(path, &c); err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromYaml 从内存中的 yaml 构造配置
func FromYaml(content []byte) (Config, error) {
	var c Config
	if err := conf.LoadFromYamlBytes(content, &c); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := harness.Sizes(c.Sizes...); err != nil {
		return fmt.Errorf("config: sizes: %w", err)
	}
	return validBenchTime(c.BenchTime)
}

func validBenchTime(v string) error {
	if n, ok := strings.CutSuffix(v, "x"); ok {
		if k, err := strconv.Atoi(n); err != nil || k <= 0 {
			return fmt.Errorf("%w: %q", ErrBadBenchTime, v)
		}
		return nil
	}
	if d, err := time.ParseDuration(v); err != nil || d <= 0 {
		return fmt.Errorf("%w: %q", ErrBadBenchTime, v)
	}
	return nil
}

// SizeClasses 配置的规模，没有配置时返回 def
func (c Config) SizeClasses(def []harness.SizeClass) []harness.SizeClass {
	if len(c.Sizes) == 0 {
		return def
	}
	return harness.MustSizes(c.Sizes...)
}
