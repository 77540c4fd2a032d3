package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/sugup/internal/analysis"
	"github.com/wonny/sugup/internal/contracts"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [all|종목코드...]",
	Short: "수급 추세 분석",
	Long: `수집된 수급 데이터로 추세 스냅샷을 산출하고 저장합니다.

산출 항목 (투자자별):
  - 추세 분류 (strong_buy / buy / neutral / sell / strong_sell)
  - 연속 순매수/순매도 일수
  - 기간 합계

그리고 가중 수급 점수(0-100)와 추천 등급.

Example:
  go run ./cmd/sugup analyze all
  go run ./cmd/sugup analyze 005930`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()

	fmt.Println("=== sugup Trend Analysis ===")
	PrintSeparator()

	codes := args
	if len(args) == 1 && args[0] == "all" {
		securities, err := a.SecurityRepo.ListTracked(ctx)
		if err != nil {
			return fmt.Errorf("list tracked securities: %w", err)
		}
		codes = make([]string, len(securities))
		for i, sec := range securities {
			codes[i] = sec.Code
		}
	}

	if len(codes) == 1 {
		return analyzeOne(cmd, a, codes[0])
	}

	result, err := a.Analyzer.AnalyzeAll(ctx, codes)
	if err != nil {
		PrintError("Analysis failed")
		return err
	}

	fmt.Printf("  Analyzed : %d\n", result.Succeeded)
	fmt.Printf("  Skipped  : %d (no data)\n", result.Skipped)
	fmt.Printf("  Failed   : %d\n", result.Failed)
	PrintSeparator()
	PrintSuccess("Analysis completed")

	return nil
}

func analyzeOne(cmd *cobra.Command, a *app, code string) error {
	snap, err := a.Analyzer.AnalyzeAndSave(cmd.Context(), code)
	if err != nil {
		if errors.Is(err, analysis.ErrNoData) {
			PrintWarning(fmt.Sprintf("수집된 수급 데이터가 없습니다: %s (collect 먼저 실행)", code))
			return nil
		}
		return err
	}

	fmt.Printf("  종목     : %s\n", snap.Code)
	fmt.Printf("  분석일   : %s (window %d일)\n", snap.AnalysisDate, snap.WindowDays)
	PrintSeparator()
	printLeg("외국인", snap.Foreign)
	printLeg("기관  ", snap.Institution)
	printLeg("개인  ", snap.Individual)
	PrintSeparator()
	fmt.Printf("  수급 점수 : %d / 100\n", snap.Score)
	fmt.Printf("  추천     : %s\n", snap.Recommendation)

	return nil
}

func printLeg(name string, leg contracts.LegTrend) {
	fmt.Printf("  %s : %-11s 연속 %+d일  합계 %+d\n", name, leg.Label, leg.Streak, leg.Total)
}
