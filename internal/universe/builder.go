// Package universe builds and refreshes the tracked security universe:
// market-cap leaders from Naver enriched with KIND listing metadata.
package universe

import (
	"context"
	"fmt"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/internal/external/krx"
	"github.com/wonny/sugup/internal/external/naver"
	"github.com/wonny/sugup/pkg/logger"
)

// Builder assembles the tracked universe. The ranking decides membership,
// the KIND listing supplies industry and listing metadata.
type Builder struct {
	naverClient  *naver.Client
	krxClient    *krx.Client
	securityRepo contracts.SecurityRepository
	logger       *logger.Logger
}

// NewBuilder creates a new Builder
func NewBuilder(naverClient *naver.Client, krxClient *krx.Client, securityRepo contracts.SecurityRepository, log *logger.Logger) *Builder {
	return &Builder{
		naverClient:  naverClient,
		krxClient:    krxClient,
		securityRepo: securityRepo,
		logger:       log.WithField("module", "universe"),
	}
}

// BuildResult summarizes a refresh.
type BuildResult struct {
	KospiCount  int
	KosdaqCount int
	Enriched    int // securities matched against the KIND listing
	Saved       int
}

// Refresh rebuilds the universe: top size securities per market by market
// cap, enriched, then upserted. Securities that dropped out of the ranking
// stay in the table but are not touched here; deactivation is a separate,
// deliberate operation.
func (b *Builder) Refresh(ctx context.Context, size int) (*BuildResult, error) {
	kospi, err := b.naverClient.FetchMarketCapRanking(ctx, "KOSPI", size)
	if err != nil {
		return nil, fmt.Errorf("fetch KOSPI ranking: %w", err)
	}

	kosdaq, err := b.naverClient.FetchMarketCapRanking(ctx, "KOSDAQ", size)
	if err != nil {
		return nil, fmt.Errorf("fetch KOSDAQ ranking: %w", err)
	}

	// Listing failure degrades to an unenriched universe instead of
	// aborting: membership matters more than metadata.
	listing, err := b.krxClient.FetchListing(ctx)
	if err != nil {
		b.logger.WithError(err).Warn("KIND listing unavailable, continuing without enrichment")
		listing = nil
	}

	byCode := make(map[string]krx.ListedCompany, len(listing))
	for _, company := range listing {
		byCode[company.Code] = company
	}

	result := &BuildResult{
		KospiCount:  len(kospi),
		KosdaqCount: len(kosdaq),
	}

	securities := make([]*contracts.Security, 0, len(kospi)+len(kosdaq))
	securities = append(securities, b.toSecurities(kospi, "KOSPI", byCode, &result.Enriched)...)
	securities = append(securities, b.toSecurities(kosdaq, "KOSDAQ", byCode, &result.Enriched)...)

	saved, err := b.securityRepo.UpsertBatch(ctx, securities)
	if err != nil {
		return nil, fmt.Errorf("save universe: %w", err)
	}
	result.Saved = saved

	b.logger.WithFields(map[string]interface{}{
		"kospi":    result.KospiCount,
		"kosdaq":   result.KosdaqCount,
		"enriched": result.Enriched,
		"saved":    result.Saved,
	}).Info("Universe refreshed")

	return result, nil
}

// toSecurities converts ranking entries for one market, joining in KIND
// metadata where the code matches.
func (b *Builder) toSecurities(items []naver.RankingItem, market string, byCode map[string]krx.ListedCompany, enriched *int) []*contracts.Security {
	securities := make([]*contracts.Security, 0, len(items))
	for _, item := range items {
		sec := &contracts.Security{
			Code:   item.StockCode,
			Name:   item.StockName,
			Market: market,
			Active: true,
		}
		if company, ok := byCode[item.StockCode]; ok {
			sec.Industry = company.Industry
			sec.Product = company.Product
			sec.ListedDate = company.ListedDate
			if company.Name != "" {
				sec.Name = company.Name
			}
			*enriched++
		}
		securities = append(securities, sec)
	}
	return securities
}
