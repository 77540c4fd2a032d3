package analysis

import (
	"context"
	"errors"
	"time"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

// ErrNoData indicates a security has no flow records to analyze.
var ErrNoData = errors.New("no flow data for security")

// PeriodDaily is the only period type the daily batch produces.
const PeriodDaily = "daily"

// Analyzer runs the per-security trend pipeline: read-back window →
// per-leg streak and classification → composite score → recommendation.
// ⭐ SSOT: 수급 트렌드 분석은 여기서만
type Analyzer struct {
	flowRepo contracts.FlowRepository
	snapRepo contracts.SnapshotRepository
	window   int
	logger   *logger.Logger
	now      func() time.Time
}

// NewAnalyzer creates a new Analyzer. window is the read-back length in
// trading days.
func NewAnalyzer(flowRepo contracts.FlowRepository, snapRepo contracts.SnapshotRepository, window int, log *logger.Logger) *Analyzer {
	return &Analyzer{
		flowRepo: flowRepo,
		snapRepo: snapRepo,
		window:   window,
		logger:   log.WithField("module", "analyzer"),
		now:      time.Now,
	}
}

// Window returns the configured read-back length.
func (a *Analyzer) Window() int {
	return a.window
}

// Analyze computes a fresh trend snapshot for one security from the current
// flow window. Returns ErrNoData when nothing has been ingested for code.
func (a *Analyzer) Analyze(ctx context.Context, code string) (*contracts.TrendSnapshot, error) {
	records, err := a.flowRepo.GetRecent(ctx, code, a.window)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	foreign := make([]int64, len(records))
	institution := make([]int64, len(records))
	individual := make([]int64, len(records))
	for i, r := range records {
		foreign[i] = r.ForeignNet
		institution[i] = r.InstitutionNet
		individual[i] = r.IndividualNet
	}

	snap := &contracts.TrendSnapshot{
		Code:         code,
		AnalysisDate: a.now().Format("2006-01-02"),
		PeriodType:   PeriodDaily,
		WindowDays:   a.window,
		Foreign:      legTrend(foreign),
		Institution:  legTrend(institution),
		Individual:   legTrend(individual),
	}

	snap.Score = CompositeScore(snap.Foreign.Label, snap.Institution.Label, snap.Individual.Label)
	snap.Recommendation = Recommend(snap.Score)

	a.logger.WithFields(map[string]interface{}{
		"code":           code,
		"score":          snap.Score,
		"recommendation": snap.Recommendation,
		"foreign":        snap.Foreign.Label,
		"institution":    snap.Institution.Label,
		"individual":     snap.Individual.Label,
	}).Debug("Analyzed supply/demand trend")

	return snap, nil
}

// AnalyzeAndSave computes and persists the snapshot, overwriting any prior
// snapshot for the same (code, date, period) key.
func (a *Analyzer) AnalyzeAndSave(ctx context.Context, code string) (*contracts.TrendSnapshot, error) {
	snap, err := a.Analyze(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := a.snapRepo.Upsert(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// BatchResult summarizes an AnalyzeAll run.
type BatchResult struct {
	Total     int
	Succeeded int
	Skipped   int // securities with no data
	Failed    int
	Snapshots []*contracts.TrendSnapshot
}

// AnalyzeAll runs the pipeline for every given security. One failing
// security never blocks the next.
func (a *Analyzer) AnalyzeAll(ctx context.Context, codes []string) (*BatchResult, error) {
	result := &BatchResult{Total: len(codes)}

	for _, code := range codes {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		snap, err := a.AnalyzeAndSave(ctx, code)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				result.Skipped++
				continue
			}
			result.Failed++
			a.logger.WithError(err).WithField("code", code).Warn("Failed to analyze security")
			continue
		}

		result.Succeeded++
		result.Snapshots = append(result.Snapshots, snap)
	}

	a.logger.WithFields(map[string]interface{}{
		"total":     result.Total,
		"succeeded": result.Succeeded,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	}).Info("Trend analysis completed")

	return result, nil
}

// legTrend derives one investor category's leg from its window.
func legTrend(values []int64) contracts.LegTrend {
	var total int64
	for _, v := range values {
		total += v
	}

	return contracts.LegTrend{
		Label:  Classify(values),
		Streak: Streak(values),
		Total:  total,
	}
}
