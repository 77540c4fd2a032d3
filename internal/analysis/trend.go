package analysis

import "github.com/wonny/sugup/internal/contracts"

// classifyWindow caps how many values the classifier inspects. Values past
// this position never affect the label.
const classifyWindow = 5

// majorityThreshold is the literal fraction for the buy/sell buckets.
// It must stay fractional: ≥70% of 5 means 4-of-5, and rounding it to an
// integer count would drift at other window sizes.
const majorityThreshold = 0.7

// Classify buckets a most-recent-first window of signed net-buy values into
// one of the five trend labels.
func Classify(values []int64) contracts.TrendLabel {
	if len(values) < 3 {
		// Insufficient data
		return contracts.TrendNeutral
	}

	window := values
	if len(window) > classifyWindow {
		window = window[:classifyWindow]
	}

	positive, negative := 0, 0
	for _, v := range window {
		switch {
		case v > 0:
			positive++
		case v < 0:
			negative++
		}
	}

	total := len(window)
	switch {
	case positive == total:
		return contracts.TrendStrongBuy
	case float64(positive) >= float64(total)*majorityThreshold:
		return contracts.TrendBuy
	case negative == total:
		return contracts.TrendStrongSell
	case float64(negative) >= float64(total)*majorityThreshold:
		return contracts.TrendSell
	default:
		return contracts.TrendNeutral
	}
}
