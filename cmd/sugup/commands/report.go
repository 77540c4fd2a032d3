package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/sugup/internal/report"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "일일 수급 리포트 생성",
	Long: `오늘 저장된 추세 스냅샷으로 일일 리포트를 만듭니다.

콘솔에는 strong_buy/buy 섹션과 동반 매수 목록을 출력하고,
--excel 지정 시 .xlsx 워크북을 함께 씁니다.

Example:
  go run ./cmd/sugup report
  go run ./cmd/sugup report --date 2026-08-27 --excel`,
	RunE: runReport,
}

var (
	reportDate  string
	reportExcel bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportDate, "date", "", "분석일 (YYYY-MM-DD, 기본: 오늘)")
	reportCmd.Flags().BoolVar(&reportExcel, "excel", false, ".xlsx 워크북 출력")
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	date := reportDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	snapshots, err := a.SnapshotRepo.ListByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		PrintWarning(fmt.Sprintf("분석 스냅샷이 없습니다: %s (analyze 먼저 실행)", date))
		return nil
	}

	favorites, err := a.Ranker.Rank(ctx, a.Config.Analysis.FavoritesLookback, a.Config.Analysis.FavoritesMinScore)
	if err != nil {
		return fmt.Errorf("rank favorites: %w", err)
	}

	daily := &report.Daily{
		Date:      date,
		Snapshots: snapshots,
		Favorites: favorites,
	}

	if err := report.WriteConsole(os.Stdout, daily); err != nil {
		return err
	}

	if reportExcel {
		dir := a.Config.Report.Dir
		if dir == "" {
			dir = "reports"
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
		path := filepath.Join(dir, fmt.Sprintf("sugup-%s.xlsx", date))
		if err := report.WriteExcel(path, daily); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Workbook written: %s", path))
	}

	return nil
}
