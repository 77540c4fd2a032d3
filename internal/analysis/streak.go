// Package analysis derives trend signals, composite supply/demand scores and
// recommendations from canonical flow records.
package analysis

// Streak computes the signed length of the leading same-sign run in values,
// which must be ordered most-recent-first. Positive means consecutive net
// buying, negative consecutive net selling.
//
// A zero-valued first entry breaks any streak and yields 0 immediately.
func Streak(values []int64) int {
	if len(values) == 0 {
		return 0
	}

	sign := signOf(values[0])
	if sign == 0 {
		return 0
	}

	days := 1
	for _, v := range values[1:] {
		if signOf(v) != sign {
			break
		}
		days++
	}

	return days * sign
}

func signOf(v int64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
