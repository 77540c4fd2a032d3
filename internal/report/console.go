// Package report renders the daily supply/demand report: a console summary
// for terminal runs and an Excel workbook for distribution.
package report

import (
	"fmt"
	"io"

	"github.com/wonny/sugup/internal/analysis"
	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/internal/numeric"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────"
)

// Daily is the assembled input for one day's report.
type Daily struct {
	Date      string // YYYY-MM-DD
	Snapshots []*contracts.TrendSnapshot
	Favorites []contracts.Favorite
	Batch     *analysis.BatchResult // optional run stats
}

// WriteConsole renders the daily report as plain text.
func WriteConsole(w io.Writer, daily *Daily) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "  수급 Daily Report — %s\n", daily.Date)
	fmt.Fprintln(w, lightRule)

	if daily.Batch != nil {
		fmt.Fprintf(w, "  Analyzed  : %d (skipped %d, failed %d)\n",
			daily.Batch.Succeeded, daily.Batch.Skipped, daily.Batch.Failed)
	}
	fmt.Fprintf(w, "  Snapshots : %d\n", len(daily.Snapshots))
	fmt.Fprintln(w, lightRule)

	writeSection(w, "STRONG BUY", filterByRecommendation(daily.Snapshots, contracts.RecommendStrongBuy))
	writeSection(w, "BUY", filterByRecommendation(daily.Snapshots, contracts.RecommendBuy))
	writeFavorites(w, daily.Favorites)

	fmt.Fprintln(w, heavyRule)
	return nil
}

func writeSection(w io.Writer, title string, snaps []*contracts.TrendSnapshot) {
	fmt.Fprintf(w, "\n  ■ %s (%d)\n", title, len(snaps))
	if len(snaps) == 0 {
		fmt.Fprintln(w, "    (none)")
		return
	}
	for _, s := range snaps {
		name := s.Name
		if name == "" {
			name = s.Code
		}
		fmt.Fprintf(w, "    %-6s %-12s score %3d  외 %s  기 %s  개 %s\n",
			s.Code, name, s.Score,
			legSummary(s.Foreign), legSummary(s.Institution), legSummary(s.Individual))
	}
}

func writeFavorites(w io.Writer, favorites []contracts.Favorite) {
	fmt.Fprintf(w, "\n  ■ 기관/외국인 동반 매수 (%d)\n", len(favorites))
	if len(favorites) == 0 {
		fmt.Fprintln(w, "    (none)")
		return
	}
	for i, f := range favorites {
		name := f.Name
		if name == "" {
			name = f.Code
		}
		fmt.Fprintf(w, "    %2d. %-6s %-12s 합산 %s (외 %s / 기 %s)  score %d\n",
			i+1, f.Code, name,
			numeric.Comma(f.CombinedTotal),
			numeric.Comma(f.ForeignTotal),
			numeric.Comma(f.InstitutionTotal),
			f.Score)
	}
}

// legSummary renders one leg as "label(+streak)".
func legSummary(leg contracts.LegTrend) string {
	return fmt.Sprintf("%s(%+d)", leg.Label, leg.Streak)
}

func filterByRecommendation(snaps []*contracts.TrendSnapshot, rec contracts.Recommendation) []*contracts.TrendSnapshot {
	var out []*contracts.TrendSnapshot
	for _, s := range snaps {
		if s.Recommendation == rec {
			out = append(out, s)
		}
	}
	return out
}
