package analysis

import "github.com/wonny/sugup/internal/contracts"

// Leg weights. Foreign and institutional flows carry equal weight; retail
// carries half of one leg.
const (
	weightForeign     = 0.40
	weightInstitution = 0.40
	weightIndividual  = 0.20
)

// trendValue maps a trend label to its reference value for the
// institutional legs.
var trendValue = map[contracts.TrendLabel]float64{
	contracts.TrendStrongBuy:  100,
	contracts.TrendBuy:        75,
	contracts.TrendNeutral:    50,
	contracts.TrendSell:       25,
	contracts.TrendStrongSell: 0,
}

// invertedTrendValue maps the individual leg. Retail flow is treated as a
// contrarian signal: retail strong buying scores like institutional strong
// selling.
var invertedTrendValue = map[contracts.TrendLabel]float64{
	contracts.TrendStrongBuy:  0,
	contracts.TrendBuy:        25,
	contracts.TrendNeutral:    50,
	contracts.TrendSell:       75,
	contracts.TrendStrongSell: 100,
}

// CompositeScore combines the three leg labels into the 0-100 supply/demand
// score. Truncation to int happens once, after clamping.
func CompositeScore(foreign, institution, individual contracts.TrendLabel) int {
	score := 50.0
	score += (trendValue[foreign] - 50) * weightForeign
	score += (trendValue[institution] - 50) * weightInstitution
	score += (invertedTrendValue[individual] - 50) * weightIndividual

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return int(score)
}

// Recommend maps a composite score to a recommendation, thresholds
// evaluated high to low.
func Recommend(score int) contracts.Recommendation {
	switch {
	case score >= 80:
		return contracts.RecommendStrongBuy
	case score >= 60:
		return contracts.RecommendBuy
	case score >= 40:
		return contracts.RecommendHold
	case score >= 20:
		return contracts.RecommendSell
	default:
		return contracts.RecommendStrongSell
	}
}
