package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/sugup/internal/analysis"
	"github.com/wonny/sugup/internal/report"
	"github.com/wonny/sugup/internal/s0_data/collector"
	"github.com/wonny/sugup/pkg/config"
	"github.com/wonny/sugup/pkg/logger"
)

// DailyPipelineJob runs the full daily chain: collect flow data for the
// tracked universe, recompute every trend snapshot, rank favorites, emit
// the report.
// ⭐ SSOT: 일일 수급 파이프라인 스케줄은 이 Job에서만
type DailyPipelineJob struct {
	collector *collector.Collector
	analyzer  *analysis.Analyzer
	ranker    *analysis.FavoritesRanker
	config    *config.Config
	logger    *logger.Logger
}

// NewDailyPipelineJob creates a new daily pipeline job
func NewDailyPipelineJob(col *collector.Collector, analyzer *analysis.Analyzer, ranker *analysis.FavoritesRanker, cfg *config.Config, log *logger.Logger) *DailyPipelineJob {
	return &DailyPipelineJob{
		collector: col,
		analyzer:  analyzer,
		ranker:    ranker,
		config:    cfg,
		logger:    log,
	}
}

// Name returns the job name
func (j *DailyPipelineJob) Name() string {
	return "daily_pipeline"
}

// Schedule returns the cron schedule. KRX settles investor figures after
// the close; 6 PM on weekdays is safely past it.
func (j *DailyPipelineJob) Schedule() string {
	return "0 0 18 * * 1-5"
}

// Run executes the pipeline
func (j *DailyPipelineJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled daily pipeline")

	// 1. Collect flow data
	summary, err := j.collector.CollectAll(ctx)
	if err != nil {
		return fmt.Errorf("collect flow data: %w", err)
	}
	if summary.Succeeded == 0 && summary.Total > 0 {
		return fmt.Errorf("collection failed for all %d securities", summary.Total)
	}

	// 2. Recompute snapshots
	codes := make([]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		if r.Error == nil && r.Saved > 0 {
			codes = append(codes, r.StockCode)
		}
	}

	batch, err := j.analyzer.AnalyzeAll(ctx, codes)
	if err != nil {
		return fmt.Errorf("analyze trends: %w", err)
	}

	// 3. Rank favorites
	favorites, err := j.ranker.Rank(ctx, j.config.Analysis.FavoritesLookback, j.config.Analysis.FavoritesMinScore)
	if err != nil {
		return fmt.Errorf("rank favorites: %w", err)
	}

	// 4. Emit report
	daily := &report.Daily{
		Date:      time.Now().Format("2006-01-02"),
		Snapshots: batch.Snapshots,
		Favorites: favorites,
		Batch:     batch,
	}

	if err := report.WriteConsole(os.Stdout, daily); err != nil {
		return fmt.Errorf("write console report: %w", err)
	}

	if j.config.Report.Excel && j.config.Report.Dir != "" {
		if err := os.MkdirAll(j.config.Report.Dir, 0o755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
		path := filepath.Join(j.config.Report.Dir, fmt.Sprintf("sugup-%s.xlsx", daily.Date))
		if err := report.WriteExcel(path, daily); err != nil {
			return fmt.Errorf("write excel report: %w", err)
		}
		j.logger.WithField("path", path).Info("Report workbook written")
	}

	j.logger.WithFields(map[string]interface{}{
		"collected": summary.Succeeded,
		"analyzed":  batch.Succeeded,
		"favorites": len(favorites),
	}).Info("Scheduled daily pipeline completed")

	return nil
}
