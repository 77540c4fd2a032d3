package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/sugup/internal/s0_data/collector"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect [all|종목코드...]",
	Short: "일별 수급 데이터 수집",
	Long: `네이버 금융 매매동향에서 일별 수급 데이터를 수집합니다.

대상:
  all       - 추적 유니버스 전체
  종목코드   - 지정한 종목만 (공백 구분, 6자리)

수집은 순차 실행되며 요청 간 최소 간격을 지킵니다.
같은 (종목, 일자)를 다시 수집하면 기존 행을 덮어씁니다.

Example:
  go run ./cmd/sugup collect all
  go run ./cmd/sugup collect 005930 000660`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	fmt.Println("=== sugup Data Collection ===")
	PrintSeparator()

	var result *collector.RunSummary
	if len(args) == 1 && args[0] == "all" {
		result, err = a.Collector.CollectAll(ctx)
	} else {
		result, err = a.Collector.Collect(ctx, args)
	}
	if err != nil {
		PrintError("Collection failed")
		return err
	}

	printCollectSummary(result.Total, result.Succeeded, result.Failed, result.RowsSaved)

	PrintSuccess("Collection completed")
	return nil
}

func printCollectSummary(total, succeeded, failed, rows int) {
	fmt.Printf("  Securities : %d (ok %d / failed %d)\n", total, succeeded, failed)
	fmt.Printf("  Rows saved : %d\n", rows)
	PrintSeparator()
}
