package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sugup/internal/analysis"
	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

type fakeSecurityRepo struct {
	tracked []*contracts.Security
	err     error
}

func (f *fakeSecurityRepo) Upsert(_ context.Context, _ *contracts.Security) error { return f.err }
func (f *fakeSecurityRepo) UpsertBatch(_ context.Context, secs []*contracts.Security) (int, error) {
	return len(secs), f.err
}
func (f *fakeSecurityRepo) ListTracked(_ context.Context) ([]*contracts.Security, error) {
	return f.tracked, f.err
}
func (f *fakeSecurityRepo) Deactivate(_ context.Context, _ string) error { return f.err }

type fakeFlowRepo struct {
	records map[string][]*contracts.FlowRecord
	aggs    []contracts.FlowAggregate
	err     error
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

type fakeSnapshotRepo struct {
	latest map[string]*contracts.TrendSnapshot
	err    error
}

func (f *fakeSnapshotRepo) Upsert(_ context.Context, _ *contracts.TrendSnapshot) error { return f.err }
func (f *fakeSnapshotRepo) GetLatest(_ context.Context, code string) (*contracts.TrendSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.latest[code], nil
}
func (f *fakeSnapshotRepo) ListByDate(_ context.Context, date string) ([]*contracts.TrendSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*contracts.TrendSnapshot
	for _, s := range f.latest {
		if s.AnalysisDate == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func seedFlows(flows *fakeFlowRepo, code string, foreign, institution, individual []int64) {
	if flows.records == nil {
		flows.records = make(map[string][]*contracts.FlowRecord)
	}
	for i := range foreign {
		flows.records[code] = append(flows.records[code], &contracts.FlowRecord{
			Code:           code,
			ForeignNet:     foreign[i],
			InstitutionNet: institution[i],
			IndividualNet:  individual[i],
		})
	}
}

// routeVars attaches mux path variables the way the router would.
func routeVars(r *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(r, vars)
}

func TestListSecurities(t *testing.T) {
	h := NewStockHandler(&fakeSecurityRepo{tracked: []*contracts.Security{
		{Code: "005930", Name: "삼성전자", Market: "KOSPI", Active: true},
	}}, &fakeFlowRepo{}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.ListSecurities(rec, httptest.NewRequest(http.MethodGet, "/api/stocks", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count      int                   `json:"count"`
		Securities []*contracts.Security `json:"securities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "005930", resp.Securities[0].Code)
}

func TestGetFlow(t *testing.T) {
	flows := &fakeFlowRepo{}
	seedFlows(flows, "005930", []int64{100, 50}, []int64{10, 20}, []int64{-110, -70})

	h := NewStockHandler(&fakeSecurityRepo{}, flows, logger.NewNop())

	req := routeVars(httptest.NewRequest(http.MethodGet, "/api/stocks/005930/flow?days=1", nil),
		map[string]string{"code": "005930"})
	rec := httptest.NewRecorder()
	h.GetFlow(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count   int                     `json:"count"`
		Records []*contracts.FlowRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, int64(100), resp.Records[0].ForeignNet)
}

func newTrendHandler(flows *fakeFlowRepo, snaps *fakeSnapshotRepo) *TrendHandler {
	log := logger.NewNop()
	analyzer := analysis.NewAnalyzer(flows, snaps, 20, log)
	ranker := analysis.NewFavoritesRanker(flows, analyzer, log)
	return NewTrendHandler(snaps, analyzer, ranker, 5, 60, log)
}

func TestGetTrendServesStoredSnapshot(t *testing.T) {
	snaps := &fakeSnapshotRepo{latest: map[string]*contracts.TrendSnapshot{
		"005930": {Code: "005930", AnalysisDate: "2026-08-28", Score: 85, Recommendation: contracts.RecommendStrongBuy},
	}}
	h := newTrendHandler(&fakeFlowRepo{}, snaps)

	req := routeVars(httptest.NewRequest(http.MethodGet, "/api/stocks/005930/trend", nil),
		map[string]string{"code": "005930"})
	rec := httptest.NewRecorder()
	h.GetTrend(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snap contracts.TrendSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 85, snap.Score)
}

func TestGetTrendLiveRecompute(t *testing.T) {
	flows := &fakeFlowRepo{}
	seedFlows(flows, "005930", []int64{1, 1, 1}, []int64{1, 1, 1}, []int64{-2, -2, -2})
	// Stored snapshot exists but live=1 must bypass it.
	snaps := &fakeSnapshotRepo{latest: map[string]*contracts.TrendSnapshot{
		"005930": {Code: "005930", Score: 10},
	}}
	h := newTrendHandler(flows, snaps)

	req := routeVars(httptest.NewRequest(http.MethodGet, "/api/stocks/005930/trend?live=1", nil),
		map[string]string{"code": "005930"})
	rec := httptest.NewRecorder()
	h.GetTrend(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snap contracts.TrendSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 100, snap.Score)
}

func TestGetTrendUnknownStock(t *testing.T) {
	h := newTrendHandler(&fakeFlowRepo{}, &fakeSnapshotRepo{})

	req := routeVars(httptest.NewRequest(http.MethodGet, "/api/stocks/999999/trend", nil),
		map[string]string{"code": "999999"})
	rec := httptest.NewRecorder()
	h.GetTrend(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFavorites(t *testing.T) {
	flows := &fakeFlowRepo{aggs: []contracts.FlowAggregate{
		{Code: "005930", Name: "삼성전자", ForeignTotal: 500, InstitutionTotal: 300},
	}}
	seedFlows(flows, "005930", []int64{100, 100, 100}, []int64{60, 60, 60}, []int64{-160, -160, -160})

	h := newTrendHandler(flows, &fakeSnapshotRepo{})

	rec := httptest.NewRecorder()
	h.GetFavorites(rec, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count     int                  `json:"count"`
		MinScore  int                  `json:"min_score"`
		Favorites []contracts.Favorite `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 60, resp.MinScore)
	assert.Equal(t, "005930", resp.Favorites[0].Code)
}

func TestGetFavoritesCannotLowerMinScore(t *testing.T) {
	h := newTrendHandler(&fakeFlowRepo{}, &fakeSnapshotRepo{})

	rec := httptest.NewRecorder()
	h.GetFavorites(rec, httptest.NewRequest(http.MethodGet, "/api/favorites?min_score=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		MinScore int `json:"min_score"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 60, resp.MinScore)
}
