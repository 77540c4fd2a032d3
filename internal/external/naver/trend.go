package naver

import (
	"context"
	"encoding/json"
	"fmt"
)

// TrendItem is one raw daily supply/demand record from the mobile trend API.
// Numeric fields arrive untyped (quoted with thousands separators on some
// endpoints, bare numbers on others); normalization happens at the parse
// boundary, not here.
type TrendItem struct {
	Bizdate    string      `json:"bizdate"` // YYYYMMDD
	ClosePrice interface{} `json:"closePrice"`
	// 전일 대비
	CompareToPreviousClosePrice interface{}    `json:"compareToPreviousClosePrice"`
	CompareToPreviousPrice      DirectionLabel `json:"compareToPreviousPrice"`
	ForeignerPureBuyQuant       interface{}    `json:"foreignerPureBuyQuant"`  // 외국인 순매수
	ForeignerHoldRatio          interface{}    `json:"foreignerHoldRatio"`     // 외국인 보유율
	OrganPureBuyQuant           interface{}    `json:"organPureBuyQuant"`      // 기관 순매수
	IndividualPureBuyQuant      interface{}    `json:"individualPureBuyQuant"` // 개인 순매수
	AccumulatedTradingVolume    interface{}    `json:"accumulatedTradingVolume"`
}

// DirectionLabel is the nested price-direction object.
type DirectionLabel struct {
	Code string `json:"code"`
	Text string `json:"text"`
	Name string `json:"name"`
}

// FetchTrend fetches up to pageSize daily supply/demand records for a stock,
// most-recent-first, from the mobile trend API.
// ⭐ SSOT: 수급 데이터 호출은 이 함수에서만
func (c *Client) FetchTrend(ctx context.Context, stockCode string, pageSize int) ([]TrendItem, error) {
	url := fmt.Sprintf("%s/api/stock/%s/trend?pageSize=%d", c.mobileBaseURL, stockCode, pageSize)

	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch trend %s: %w", stockCode, err)
	}

	items, err := decodeTrendBody(body)
	if err != nil {
		return nil, fmt.Errorf("decode trend %s: %w", stockCode, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"stock_code": stockCode,
		"count":      len(items),
	}).Debug("Fetched supply/demand trend")

	return items, nil
}

// decodeTrendBody tolerates both response shapes the endpoint has used:
// a bare array and an object wrapping the array.
func decodeTrendBody(body []byte) ([]TrendItem, error) {
	var items []TrendItem
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Trends []TrendItem `json:"trends"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	return wrapped.Trends, nil
}
