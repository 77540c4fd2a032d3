package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// universeCmd represents the universe command
var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "추적 종목 유니버스 갱신",
	Long: `시가총액 상위 종목으로 추적 유니버스를 재구성합니다.

이 명령어는:
- KOSPI/KOSDAQ 시가총액 랭킹 조회
- KIND 상장사 목록으로 업종/상장일 보강
- securities 테이블에 upsert

Example:
  go run ./cmd/sugup universe
  go run ./cmd/sugup universe --size 300`,
	RunE: runUniverse,
}

var universeSize int

func init() {
	rootCmd.AddCommand(universeCmd)

	universeCmd.Flags().IntVar(&universeSize, "size", 0, "시장별 상위 N 종목 (기본: COLLECT_UNIVERSE_SIZE)")
}

func runUniverse(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	size := universeSize
	if size <= 0 {
		size = a.Config.Collect.UniverseSize
	}

	fmt.Println("=== sugup Universe Refresh ===")
	PrintSeparator()

	result, err := a.Universe.Refresh(cmd.Context(), size)
	if err != nil {
		PrintError("Universe refresh failed")
		return err
	}

	fmt.Printf("  KOSPI    : %d\n", result.KospiCount)
	fmt.Printf("  KOSDAQ   : %d\n", result.KosdaqCount)
	fmt.Printf("  Enriched : %d\n", result.Enriched)
	fmt.Printf("  Saved    : %d\n", result.Saved)
	PrintSeparator()
	PrintSuccess("Universe refreshed")

	return nil
}
