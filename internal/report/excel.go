package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetTrends    = "수급 분석"
	sheetFavorites = "기관외인 동반매수"
)

// WriteExcel renders the daily report as an .xlsx workbook at path.
func WriteExcel(path string, daily *Daily) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTrendSheet(f, daily); err != nil {
		return err
	}
	if err := writeFavoritesSheet(f, daily); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report workbook: %w", err)
	}
	return nil
}

func writeTrendSheet(f *excelize.File, daily *Daily) error {
	idx, err := f.NewSheet(sheetTrends)
	if err != nil {
		return fmt.Errorf("create trend sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	header := []interface{}{
		"종목코드", "종목명", "분석일", "점수", "추천",
		"외국인 추세", "외국인 연속일", "외국인 합계",
		"기관 추세", "기관 연속일", "기관 합계",
		"개인 추세", "개인 연속일", "개인 합계",
	}
	if err := f.SetSheetRow(sheetTrends, "A1", &header); err != nil {
		return fmt.Errorf("write trend header: %w", err)
	}

	for i, s := range daily.Snapshots {
		row := []interface{}{
			s.Code, s.Name, s.AnalysisDate, s.Score, string(s.Recommendation),
			string(s.Foreign.Label), s.Foreign.Streak, s.Foreign.Total,
			string(s.Institution.Label), s.Institution.Streak, s.Institution.Total,
			string(s.Individual.Label), s.Individual.Streak, s.Individual.Total,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetTrends, cell, &row); err != nil {
			return fmt.Errorf("write trend row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeFavoritesSheet(f *excelize.File, daily *Daily) error {
	if _, err := f.NewSheet(sheetFavorites); err != nil {
		return fmt.Errorf("create favorites sheet: %w", err)
	}

	header := []interface{}{
		"순위", "종목코드", "종목명", "합산 순매수", "외국인 순매수", "기관 순매수", "점수", "추천",
	}
	if err := f.SetSheetRow(sheetFavorites, "A1", &header); err != nil {
		return fmt.Errorf("write favorites header: %w", err)
	}

	for i, fav := range daily.Favorites {
		row := []interface{}{
			i + 1, fav.Code, fav.Name,
			fav.CombinedTotal, fav.ForeignTotal, fav.InstitutionTotal,
			fav.Score, string(fav.Recommendation),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetFavorites, cell, &row); err != nil {
			return fmt.Errorf("write favorites row %d: %w", i+2, err)
		}
	}
	return nil
}
