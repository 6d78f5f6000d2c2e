package main

import (
	"fmt"
	"os"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/gops/agent"
	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"

	"go-cost-notes/harness"
	"go-cost-notes/suite"
)

// manifestEntry list --json 输出的一行
type manifestEntry struct {
	Label      string `json:"label"`
	Group      string `json:"group"`
	Variant    string `json:"variant"`
	Size       int    `json:"size"`
	Unit       string `json:"unit"`
	Throughput int64  `json:"throughput"`
}

func manifest(cells []harness.Cell) []manifestEntry {
	out := make([]manifestEntry, len(cells))
	for i, c := range cells {
		out[i] = manifestEntry{
			Label:      c.Label(),
			Group:      c.Group,
			Variant:    c.Variant,
			Size:       c.Size.Int(),
			Unit:       c.Unit.String(),
			Throughput: c.Throughput(),
		}
	}
	return out
}

func runList(cmd *cobra.Command, _ []string) error {
	cells := suite.Cells(cfg.SizeClasses(nil))
	w := cmd.OutOrStdout()
	if !asJSON {
		for _, c := range cells {
			fmt.Fprintln(w, c.Label())
		}
		return nil
	}
	data, err := sonic.ConfigStd.MarshalIndent(manifest(cells), "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func runRun(cmd *cobra.Command, _ []string) error {
	testing.Init()
	restore, err := harness.SetBenchTime(cfg.BenchTime)
	if err != nil {
		return err
	}
	defer restore()

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			return fmt.Errorf("start gops agent: %w", err)
		}
		defer agent.Close()
	}

	col := &harness.Collector{
		OnResult: func(r harness.Result) {
			logx.Infow("bench",
				logx.Field("name", r.Name),
				logx.Field("n", r.N),
				logx.Field("ns_per_op", r.NsPerOp),
				logx.Field("allocs_per_op", r.AllocsPerOp),
				logx.Field("bytes_per_op", r.BytesPerOp),
				logx.Field("ns_per_elem", r.NsPerElem))
		},
	}
	sizes := cfg.SizeClasses(nil)
	for _, s := range suite.All() {
		logx.Infow("suite start", logx.Field("suite", s.Name), logx.Field("benchtime", cfg.BenchTime))
		harness.Run(col, s.Build(sizes))
	}

	results := col.Results()
	logx.Infow("done", logx.Field("cells", len(results)))
	if cfg.Output == "" {
		return nil
	}
	return writeResults(cfg.Output, results)
}

func writeResults(path string, results []harness.Result) error {
	data, err := sonic.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logx.Infow("results written", logx.Field("path", path))
	return nil
}
