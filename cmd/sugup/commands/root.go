package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sugup",
	Short: "수급 분석기 - 외국인/기관 매매동향 수집 및 추세 분석",
	Long: `sugup CLI

네이버 금융 매매동향에서 일별 수급 데이터를 수집하고
외국인/기관/개인 추세와 수급 점수를 산출합니다.

Usage:
  go run ./cmd/sugup [command]

Examples:
  go run ./cmd/sugup universe
  go run ./cmd/sugup collect all
  go run ./cmd/sugup analyze 005930
  go run ./cmd/sugup favorites
  go run ./cmd/sugup report
  go run ./cmd/sugup serve`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
