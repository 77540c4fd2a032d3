package naver

import (
	"context"
	"encoding/json"
	"fmt"
)

// RankingItem represents a single market-cap ranking entry.
type RankingItem struct {
	Rank      int
	StockCode string
	StockName string
}

type marketValueResponse struct {
	Stocks     []marketValueItem `json:"stocks"`
	TotalCount int               `json:"totalCount"`
}

type marketValueItem struct {
	ItemCode  string `json:"itemCode"`
	StockName string `json:"stockName"`
}

// FetchMarketCapRanking fetches stocks ordered by market cap for a market
// ("KOSPI" or "KOSDAQ"), up to limit entries. Pages through the mobile API
// at 100 items per page.
func (c *Client) FetchMarketCapRanking(ctx context.Context, market string, limit int) ([]RankingItem, error) {
	const pageSize = 100

	var items []RankingItem
	for page := 1; len(items) < limit; page++ {
		url := fmt.Sprintf("%s/api/stocks/marketValue/%s?page=%d&pageSize=%d",
			c.mobileBaseURL, market, page, pageSize)

		body, err := c.fetchJSON(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch market cap ranking %s page %d: %w", market, page, err)
		}

		var resp marketValueResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decode ranking response: %w", err)
		}

		if len(resp.Stocks) == 0 {
			break
		}

		for _, s := range resp.Stocks {
			if s.ItemCode == "" {
				continue
			}
			items = append(items, RankingItem{
				Rank:      len(items) + 1,
				StockCode: s.ItemCode,
				StockName: s.StockName,
			})
			if len(items) >= limit {
				break
			}
		}

		// Short page means no more data
		if len(resp.Stocks) < pageSize {
			break
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"market": market,
		"count":  len(items),
	}).Debug("Fetched market cap ranking")

	return items, nil
}
