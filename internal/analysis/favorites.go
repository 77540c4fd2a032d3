package analysis

import (
	"context"
	"errors"
	"sort"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

// FavoritesRanker finds securities where foreign and institutional investors
// are simultaneously net accumulating (기관/외국인 동반 매수).
//
// Two stages: a cheap SQL aggregate pre-filter (necessary but not
// sufficient), then the authoritative per-security recompute through the
// Analyzer. The pre-filter must never grow its own scoring logic.
type FavoritesRanker struct {
	flowRepo contracts.FlowRepository
	analyzer *Analyzer
	logger   *logger.Logger
}

// NewFavoritesRanker creates a new FavoritesRanker
func NewFavoritesRanker(flowRepo contracts.FlowRepository, analyzer *Analyzer, log *logger.Logger) *FavoritesRanker {
	return &FavoritesRanker{
		flowRepo: flowRepo,
		analyzer: analyzer,
		logger:   log.WithField("module", "favorites"),
	}
}

// Rank returns qualifying candidates ordered by combined net-buy magnitude.
// lookbackDays bounds the aggregate pre-filter; minScore cuts candidates
// whose recomputed score falls short even though they passed the aggregate.
func (r *FavoritesRanker) Rank(ctx context.Context, lookbackDays, minScore int) ([]contracts.Favorite, error) {
	aggs, err := r.flowRepo.SumNetBuys(ctx, lookbackDays)
	if err != nil {
		return nil, err
	}

	// Stable sort keeps scan order for equal combined totals.
	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].Combined() > aggs[j].Combined()
	})

	favorites := make([]contracts.Favorite, 0, len(aggs))
	for _, agg := range aggs {
		snap, err := r.analyzer.Analyze(ctx, agg.Code)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			r.logger.WithError(err).WithField("code", agg.Code).Warn("Failed to rescore candidate")
			continue
		}

		if snap.Score < minScore {
			continue
		}

		favorites = append(favorites, contracts.Favorite{
			Code:             agg.Code,
			Name:             agg.Name,
			ForeignTotal:     agg.ForeignTotal,
			InstitutionTotal: agg.InstitutionTotal,
			CombinedTotal:    agg.Combined(),
			Score:            snap.Score,
			Recommendation:   snap.Recommendation,
		})
	}

	r.logger.WithFields(map[string]interface{}{
		"candidates": len(aggs),
		"qualified":  len(favorites),
		"lookback":   lookbackDays,
		"min_score":  minScore,
	}).Info("Institutional favorites ranked")

	return favorites, nil
}
