package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/sugup/internal/s0_data"
)

// initDBCmd represents the init-db command
var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "데이터베이스 스키마 생성",
	Long: `필요한 테이블과 인덱스를 생성합니다. 이미 존재하면 그대로 둡니다.

Tables:
  securities       - 추적 종목 마스터
  investor_flow    - 일별 수급 데이터 (종목, 일자)
  trend_snapshots  - 추세 분석 스냅샷

Example:
  go run ./cmd/sugup init-db`,
	RunE: runInitDB,
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if err := s0_data.EnsureSchema(ctx, a.DB.Pool); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	PrintSuccess("Schema is up to date")
	return nil
}
