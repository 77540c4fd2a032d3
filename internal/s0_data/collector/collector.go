package collector

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/internal/external/naver"
	"github.com/wonny/sugup/internal/s0_data"
	"github.com/wonny/sugup/pkg/logger"
)

// Collector orchestrates supply/demand ingestion: fetch per security, parse,
// upsert. One pass per day is the intended cadence.
// ⭐ SSOT: 수급 데이터 수집 오케스트레이션은 이 패키지에서만
//
// Collection is deliberately sequential. The upstream endpoint is shared
// infrastructure and the whole universe fits in one polite pass; the rate
// limiter enforces the minimum inter-request spacing.
type Collector struct {
	naverClient  *naver.Client
	parser       *s0_data.Parser
	securityRepo contracts.SecurityRepository
	flowRepo     contracts.FlowRepository
	limiter      *rate.Limiter
	pageSize     int
	logger       *logger.Logger
}

// Config holds collector configuration
type Config struct {
	PageSize     int           // records requested per security
	RequestDelay time.Duration // minimum spacing between upstream requests
}

// NewCollector creates a new Collector instance
func NewCollector(
	naverClient *naver.Client,
	parser *s0_data.Parser,
	securityRepo contracts.SecurityRepository,
	flowRepo contracts.FlowRepository,
	cfg Config,
	log *logger.Logger,
) *Collector {
	delay := cfg.RequestDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 60
	}

	return &Collector{
		naverClient:  naverClient,
		parser:       parser,
		securityRepo: securityRepo,
		flowRepo:     flowRepo,
		limiter:      rate.NewLimiter(rate.Every(delay), 1),
		pageSize:     pageSize,
		logger:       log.WithField("module", "collector"),
	}
}

// FetchResult represents one security's outcome within a collection run.
type FetchResult struct {
	StockCode string
	Fetched   int // raw items returned upstream
	Parsed    int // items surviving normalization
	Saved     int // rows upserted
	Error     error
}

// RunSummary aggregates a full collection pass.
type RunSummary struct {
	Total     int
	Succeeded int
	Failed    int
	RowsSaved int
	Results   []FetchResult
	Elapsed   time.Duration
}

// CollectAll ingests flow data for every tracked security. A failed security
// means no data for it in this run; it never aborts the pass.
func (c *Collector) CollectAll(ctx context.Context) (*RunSummary, error) {
	securities, err := c.securityRepo.ListTracked(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tracked securities: %w", err)
	}

	codes := make([]string, len(securities))
	for i, sec := range securities {
		codes[i] = sec.Code
	}

	return c.Collect(ctx, codes)
}

// Collect ingests flow data for the given securities in order.
func (c *Collector) Collect(ctx context.Context, codes []string) (*RunSummary, error) {
	start := time.Now()

	c.logger.WithFields(map[string]interface{}{
		"security_count": len(codes),
		"page_size":      c.pageSize,
	}).Info("Starting supply/demand collection")

	summary := &RunSummary{
		Total:   len(codes),
		Results: make([]FetchResult, 0, len(codes)),
	}

	for _, code := range codes {
		if err := c.limiter.Wait(ctx); err != nil {
			summary.Elapsed = time.Since(start)
			return summary, err
		}

		result := c.collectOne(ctx, code)
		summary.Results = append(summary.Results, result)

		if result.Error != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.RowsSaved += result.Saved
	}

	summary.Elapsed = time.Since(start)

	c.logger.WithFields(map[string]interface{}{
		"total":      summary.Total,
		"succeeded":  summary.Succeeded,
		"failed":     summary.Failed,
		"rows_saved": summary.RowsSaved,
		"elapsed":    summary.Elapsed.Round(time.Millisecond).String(),
	}).Info("Supply/demand collection completed")

	return summary, nil
}

// collectOne runs the fetch → parse → upsert chain for a single security.
func (c *Collector) collectOne(ctx context.Context, code string) FetchResult {
	result := FetchResult{StockCode: code}

	items, err := c.naverClient.FetchTrend(ctx, code, c.pageSize)
	if err != nil {
		c.logger.WithError(err).WithField("stock_code", code).Error("Failed to fetch trend data")
		result.Error = err
		return result
	}
	result.Fetched = len(items)

	records := c.parser.ParseTrend(code, items)
	result.Parsed = len(records)
	if len(records) == 0 {
		c.logger.WithField("stock_code", code).Warn("No usable trend records")
		return result
	}

	saved, err := c.flowRepo.UpsertBatch(ctx, records)
	result.Saved = saved
	if err != nil {
		c.logger.WithError(err).WithField("stock_code", code).Error("Failed to save flow records")
		result.Error = err
		return result
	}

	c.logger.WithFields(map[string]interface{}{
		"stock_code": code,
		"fetched":    result.Fetched,
		"saved":      result.Saved,
	}).Debug("Collected supply/demand flow")

	return result
}
