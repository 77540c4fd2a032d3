package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

func newTestRanker(flows *fakeFlowRepo) *FavoritesRanker {
	a := newTestAnalyzer(flows, &fakeSnapshotRepo{}, 20)
	return NewFavoritesRanker(flows, a, logger.NewNop())
}

func TestFavoritesRank(t *testing.T) {
	flows := newFakeFlowRepo()
	// Both pass the aggregate pre-filter; 000660 has the larger combined total.
	flows.aggs = []contracts.FlowAggregate{
		{Code: "005930", Name: "삼성전자", ForeignTotal: 500, InstitutionTotal: 300},
		{Code: "000660", Name: "SK하이닉스", ForeignTotal: 900, InstitutionTotal: 400},
	}
	flows.seed("005930", []int64{100, 100, 100, 100, 100}, []int64{60, 60, 60, 60, 60}, []int64{-160, -160, -160, -160, -160})
	flows.seed("000660", []int64{300, 200, 200, 100, 100}, []int64{100, 100, 100, 50, 50}, []int64{-400, -300, -300, -150, -150})

	ranker := newTestRanker(flows)

	favorites, err := ranker.Rank(context.Background(), 5, 60)
	require.NoError(t, err)
	require.Len(t, favorites, 2)

	// Ordered by combined totals, largest first.
	assert.Equal(t, "000660", favorites[0].Code)
	assert.Equal(t, int64(1300), favorites[0].CombinedTotal)
	assert.Equal(t, "005930", favorites[1].Code)
	assert.Equal(t, int64(800), favorites[1].CombinedTotal)

	// Scores come from the full recompute, not the aggregate.
	assert.Equal(t, 100, favorites[0].Score)
	assert.Equal(t, contracts.RecommendStrongBuy, favorites[0].Recommendation)
}

func TestFavoritesRankMinScoreCut(t *testing.T) {
	flows := newFakeFlowRepo()
	flows.aggs = []contracts.FlowAggregate{
		{Code: "005930", Name: "삼성전자", ForeignTotal: 500, InstitutionTotal: 300},
	}
	// Positive totals over the lookback, but the window is mixed enough that
	// both legs classify neutral: recomputed score stays at 50.
	flows.seed("005930", []int64{500, -100, 200, -300, 100}, []int64{300, -50, -100, 50, 100}, []int64{0, 0, 0, 0, 0})

	ranker := newTestRanker(flows)

	favorites, err := ranker.Rank(context.Background(), 5, 60)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoritesRankSkipsVanishedCandidates(t *testing.T) {
	flows := newFakeFlowRepo()
	// Aggregate row exists but the detail rows are gone.
	flows.aggs = []contracts.FlowAggregate{
		{Code: "035720", Name: "카카오", ForeignTotal: 10, InstitutionTotal: 10},
	}

	ranker := newTestRanker(flows)

	favorites, err := ranker.Rank(context.Background(), 5, 0)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoritesRankStableTieBreak(t *testing.T) {
	flows := newFakeFlowRepo()
	flows.aggs = []contracts.FlowAggregate{
		{Code: "005930", ForeignTotal: 50, InstitutionTotal: 50},
		{Code: "000660", ForeignTotal: 60, InstitutionTotal: 40},
	}
	series := []int64{10, 10, 10, 10, 10}
	flows.seed("005930", series, series, []int64{-20, -20, -20, -20, -20})
	flows.seed("000660", series, series, []int64{-20, -20, -20, -20, -20})

	ranker := newTestRanker(flows)

	favorites, err := ranker.Rank(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, favorites, 2)

	// Equal combined totals keep their incoming order.
	assert.Equal(t, "005930", favorites[0].Code)
	assert.Equal(t, "000660", favorites[1].Code)
}

func TestFavoritesRankAggregateError(t *testing.T) {
	flows := newFakeFlowRepo()
	flows.err = errors.New("query timeout")

	ranker := newTestRanker(flows)

	_, err := ranker.Rank(context.Background(), 5, 60)
	assert.Error(t, err)
}
