package s0_data

import (
	"fmt"
	"math"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/internal/external/naver"
	"github.com/wonny/sugup/internal/numeric"
	"github.com/wonny/sugup/pkg/logger"
)

// Parser maps raw trend items into canonical flow records.
// ⭐ SSOT: 수급 레코드 정규화는 여기서만 — downstream never re-validates shape.
type Parser struct {
	logger *logger.Logger
}

// NewParser creates a new Parser
func NewParser(log *logger.Logger) *Parser {
	return &Parser{logger: log}
}

// ParseTrend converts a batch of raw items for one security. A malformed
// item is logged and dropped; it never aborts the batch.
func (p *Parser) ParseTrend(stockCode string, items []naver.TrendItem) []*contracts.FlowRecord {
	records := make([]*contracts.FlowRecord, 0, len(items))

	for _, item := range items {
		record, err := p.parseItem(stockCode, item)
		if err != nil {
			p.logger.WithFields(map[string]interface{}{
				"stock_code": stockCode,
				"bizdate":    item.Bizdate,
				"error":      err.Error(),
			}).Warn("Dropping malformed flow record")
			continue
		}
		records = append(records, record)
	}

	return records
}

// parseItem builds one canonical record. The numeric normalizer guarantees
// every numeric field is populated; only an unshaped date fails parsing.
func (p *Parser) parseItem(stockCode string, item naver.TrendItem) (*contracts.FlowRecord, error) {
	date, err := reformatBizdate(item.Bizdate)
	if err != nil {
		return nil, err
	}

	closePrice := numeric.ToInt(item.ClosePrice)
	priceChange := numeric.ToInt(item.CompareToPreviousClosePrice)

	// 등락률: delta / prev_close * 100. The previous close reconstructs as
	// close - delta; a zero denominator yields 0 rather than dividing.
	changeRate := 0.0
	if prevClose := closePrice - priceChange; prevClose != 0 {
		changeRate = round2(float64(priceChange) / float64(prevClose) * 100)
	}

	foreignNet := numeric.ToInt(item.ForeignerPureBuyQuant)
	institutionNet := numeric.ToInt(item.OrganPureBuyQuant)
	individualNet := numeric.ToInt(item.IndividualPureBuyQuant)

	netInstitutional := foreignNet + institutionNet

	return &contracts.FlowRecord{
		Code:             stockCode,
		Date:             date,
		ClosePrice:       closePrice,
		PriceChange:      priceChange,
		ChangeDirection:  item.CompareToPreviousPrice.Text,
		ChangeRate:       changeRate,
		ForeignNet:       foreignNet,
		ForeignHoldRatio: numeric.ToRatio(item.ForeignerHoldRatio),
		InstitutionNet:   institutionNet,
		IndividualNet:    individualNet,
		Volume:           numeric.ToInt(item.AccumulatedTradingVolume),
		NetInstitutional: netInstitutional,
		SupplyBalance:    netInstitutional + individualNet,
	}, nil
}

// reformatBizdate reshapes a compact YYYYMMDD date into YYYY-MM-DD.
// Pure string slicing; shape is the only validation.
func reformatBizdate(bizdate string) (string, error) {
	if len(bizdate) < 8 {
		return "", fmt.Errorf("unshaped bizdate %q", bizdate)
	}
	return bizdate[:4] + "-" + bizdate[4:6] + "-" + bizdate[6:8], nil
}

// round2 is the single canonical rounding rule for the change rate.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
