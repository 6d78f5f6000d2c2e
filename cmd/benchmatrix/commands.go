package main

import (
	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/logx"

	"go-cost-notes/config"
)

var (
	configFile string
	asJSON     bool
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "benchmatrix",
		Short: "List and run the allocation-isolated benchmark matrix",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configFile)
			if err != nil {
				return err
			}
			cfg = c
			logx.MustSetup(cfg.Log)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logx.Close()
		},
		SilenceUsage: true,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Print every benchmark cell without running it",
		RunE:  runList,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run every benchmark cell through testing.Benchmark",
		RunE:  runRun,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "conf", "f", "etc/benchmatrix.yaml", "config file")
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&asJSON, "json", false, "print the manifest as JSON")
	rootCmd.AddCommand(runCmd)
}
