package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

// fakeFlowRepo keeps flow records in memory, most-recent-first per code.
type fakeFlowRepo struct {
	records map[string][]*contracts.FlowRecord
	aggs    []contracts.FlowAggregate
	err     error
}

func newFakeFlowRepo() *fakeFlowRepo {
	return &fakeFlowRepo{records: make(map[string][]*contracts.FlowRecord)}
}

// seed loads the three leg series for one code, newest first.
func (f *fakeFlowRepo) seed(code string, foreign, institution, individual []int64) {
	for i := range foreign {
		f.records[code] = append(f.records[code], &contracts.FlowRecord{
			Code:           code,
			Date:           fmt.Sprintf("2026-08-%02d", 28-i),
			ForeignNet:     foreign[i],
			InstitutionNet: institution[i],
			IndividualNet:  individual[i],
		})
	}
}

func (f *fakeFlowRepo) Upsert(_ context.Context, _ *contracts.FlowRecord) error { return f.err }

func (f *fakeFlowRepo) UpsertBatch(_ context.Context, records []*contracts.FlowRecord) (int, error) {
	return len(records), f.err
}

func (f *fakeFlowRepo) GetRecent(_ context.Context, code string, limit int) ([]*contracts.FlowRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	recs := f.records[code]
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func (f *fakeFlowRepo) SumNetBuys(_ context.Context, _ int) ([]contracts.FlowAggregate, error) {
	return f.aggs, f.err
}

// fakeSnapshotRepo records every upsert.
type fakeSnapshotRepo struct {
	saved []*contracts.TrendSnapshot
	err   error
}

func (f *fakeSnapshotRepo) Upsert(_ context.Context, snap *contracts.TrendSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeSnapshotRepo) GetLatest(_ context.Context, code string) (*contracts.TrendSnapshot, error) {
	for i := len(f.saved) - 1; i >= 0; i-- {
		if f.saved[i].Code == code {
			return f.saved[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSnapshotRepo) ListByDate(_ context.Context, date string) ([]*contracts.TrendSnapshot, error) {
	var out []*contracts.TrendSnapshot
	for _, s := range f.saved {
		if s.AnalysisDate == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func newTestAnalyzer(flows *fakeFlowRepo, snaps *fakeSnapshotRepo, window int) *Analyzer {
	a := NewAnalyzer(flows, snaps, window, logger.NewNop())
	a.now = func() time.Time { return time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC) }
	return a
}

func TestAnalyzerAnalyze(t *testing.T) {
	flows := newFakeFlowRepo()
	// Foreign buying three days straight then a sell: streak 3, 4/5 positive.
	flows.seed("005930",
		[]int64{100, 50, 30, -10, 20},
		[]int64{-5, -5, -5, -5, -5},
		[]int64{-80, -40, -20, 20, -10},
	)

	a := newTestAnalyzer(flows, &fakeSnapshotRepo{}, 20)

	snap, err := a.Analyze(context.Background(), "005930")
	require.NoError(t, err)

	assert.Equal(t, "005930", snap.Code)
	assert.Equal(t, "2026-08-28", snap.AnalysisDate)
	assert.Equal(t, PeriodDaily, snap.PeriodType)
	assert.Equal(t, 20, snap.WindowDays)

	assert.Equal(t, contracts.TrendBuy, snap.Foreign.Label)
	assert.Equal(t, 3, snap.Foreign.Streak)
	assert.Equal(t, int64(190), snap.Foreign.Total)

	assert.Equal(t, contracts.TrendStrongSell, snap.Institution.Label)
	assert.Equal(t, -5, snap.Institution.Streak)
	assert.Equal(t, int64(-25), snap.Institution.Total)

	assert.Equal(t, contracts.TrendSell, snap.Individual.Label)
	assert.Equal(t, -3, snap.Individual.Streak)

	// 50 + 25*0.4 - 50*0.4 + 25*0.2 = 45
	assert.Equal(t, 45, snap.Score)
	assert.Equal(t, contracts.RecommendHold, snap.Recommendation)
}

func TestAnalyzerAnalyzeNoData(t *testing.T) {
	a := newTestAnalyzer(newFakeFlowRepo(), &fakeSnapshotRepo{}, 20)

	_, err := a.Analyze(context.Background(), "999999")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestAnalyzerAnalyzeRepoError(t *testing.T) {
	flows := newFakeFlowRepo()
	flows.err = errors.New("connection refused")

	a := newTestAnalyzer(flows, &fakeSnapshotRepo{}, 20)

	_, err := a.Analyze(context.Background(), "005930")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestAnalyzerAnalyzeAndSave(t *testing.T) {
	flows := newFakeFlowRepo()
	flows.seed("000660", []int64{10, 10, 10, 10, 10}, []int64{5, 5, 5, 5, 5}, []int64{-15, -15, -15, -15, -15})
	snaps := &fakeSnapshotRepo{}

	a := newTestAnalyzer(flows, snaps, 20)

	snap, err := a.AnalyzeAndSave(context.Background(), "000660")
	require.NoError(t, err)
	require.Len(t, snaps.saved, 1)
	assert.Same(t, snap, snaps.saved[0])
	assert.Equal(t, 100, snap.Score)
}

func TestAnalyzerAnalyzeAll(t *testing.T) {
	flows := newFakeFlowRepo()
	flows.seed("005930", []int64{100, 50, 30, -10, 20}, []int64{1, 1, 1, 1, 1}, []int64{-1, -1, -1, -1, -1})
	flows.seed("000660", []int64{-5, -5, -5}, []int64{3, 3, 3}, []int64{2, 2, 2})
	snaps := &fakeSnapshotRepo{}

	a := newTestAnalyzer(flows, snaps, 20)

	result, err := a.AnalyzeAll(context.Background(), []string{"005930", "000660", "035720"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Skipped) // 035720 has no data
	assert.Equal(t, 0, result.Failed)
	assert.Len(t, result.Snapshots, 2)
	assert.Len(t, snaps.saved, 2)
}

func TestAnalyzerAnalyzeAllContinuesPastFailures(t *testing.T) {
	flows := newFakeFlowRepo()
	flows.seed("005930", []int64{1, 1, 1}, []int64{1, 1, 1}, []int64{-1, -1, -1})
	snaps := &fakeSnapshotRepo{err: errors.New("disk full")}

	a := newTestAnalyzer(flows, snaps, 20)

	result, err := a.AnalyzeAll(context.Background(), []string{"005930"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Succeeded)
}

func TestAnalyzerAnalyzeAllRespectsContext(t *testing.T) {
	flows := newFakeFlowRepo()
	flows.seed("005930", []int64{1}, []int64{1}, []int64{1})

	a := newTestAnalyzer(flows, &fakeSnapshotRepo{}, 20)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AnalyzeAll(ctx, []string{"005930"})
	assert.ErrorIs(t, err, context.Canceled)
}
