package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/sugup/internal/numeric"
)

// favoritesCmd represents the favorites command
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "기관/외국인 동반 매수 종목",
	Long: `최근 N일간 외국인과 기관이 동시에 순매수한 종목을
합산 순매수 규모 순으로 보여줍니다.

후보는 집계로 선별한 뒤 전체 분석 파이프라인으로 재채점하며,
최소 수급 점수를 넘는 종목만 남습니다.

Example:
  go run ./cmd/sugup favorites
  go run ./cmd/sugup favorites --lookback 10 --min-score 70`,
	RunE: runFavorites,
}

var (
	favoritesLookback int
	favoritesMinScore int
)

func init() {
	rootCmd.AddCommand(favoritesCmd)

	favoritesCmd.Flags().IntVar(&favoritesLookback, "lookback", 0, "집계 기간 (일, 기본: FAVORITES_LOOKBACK_DAYS)")
	favoritesCmd.Flags().IntVar(&favoritesMinScore, "min-score", 0, "최소 수급 점수 (기본: FAVORITES_MIN_SCORE)")
}

func runFavorites(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	lookback := favoritesLookback
	if lookback <= 0 {
		lookback = a.Config.Analysis.FavoritesLookback
	}
	minScore := favoritesMinScore
	if minScore <= 0 {
		minScore = a.Config.Analysis.FavoritesMinScore
	}

	fmt.Println("=== sugup 기관/외국인 동반 매수 ===")
	fmt.Printf("  기간 %d일 / 최소 점수 %d\n", lookback, minScore)
	PrintSeparator()

	favorites, err := a.Ranker.Rank(cmd.Context(), lookback, minScore)
	if err != nil {
		PrintError("Favorites ranking failed")
		return err
	}

	if len(favorites) == 0 {
		PrintInfo("조건을 만족하는 종목이 없습니다")
		return nil
	}

	for i, f := range favorites {
		fmt.Printf("  %2d. %-6s %-12s 합산 %s (외 %s / 기 %s)  점수 %d  %s\n",
			i+1, f.Code, f.Name,
			numeric.Comma(f.CombinedTotal),
			numeric.Comma(f.ForeignTotal),
			numeric.Comma(f.InstitutionTotal),
			f.Score, f.Recommendation)
	}
	PrintSeparator()
	PrintSuccess(fmt.Sprintf("%d개 종목", len(favorites)))

	return nil
}
