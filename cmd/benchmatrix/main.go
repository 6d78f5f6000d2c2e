// benchmatrix 在 go test 之外列出并运行全部基准矩阵。
//
//	benchmatrix list --json
//	benchmatrix run -f etc/benchmatrix.yaml
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
