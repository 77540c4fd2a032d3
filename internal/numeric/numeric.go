// Package numeric normalizes the heterogeneous numeric representations the
// upstream APIs return (quoted numbers with thousands separators, sign
// prefixes, percent suffixes, nulls, raw bytes) into strict values.
//
// Every function here is total: no input produces an error, unparseable
// input resolves to the zero fallback. Callers never re-validate.
package numeric

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts any upstream value to an int64.
// nil → 0, numeric → truncated cast, bytes → text rule, text → stripped of
// "," and leading "+" then parsed. A leading "-" is preserved as sign.
func ToInt(v interface{}) int64 {
	switch val := v.(type) {
	case nil:
		return 0
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case float32:
		return int64(val)
	case float64:
		return int64(val)
	case json.Number:
		return parseIntText(val.String())
	case []byte:
		return parseIntText(string(val))
	case string:
		return parseIntText(val)
	default:
		return 0
	}
}

// ToRatio converts any upstream value to a float64, additionally stripping a
// "%" suffix from textual input.
func ToRatio(v interface{}) float64 {
	switch val := v.(type) {
	case nil:
		return 0.0
	case int:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case float32:
		return float64(val)
	case float64:
		return val
	case json.Number:
		return parseRatioText(val.String())
	case []byte:
		return parseRatioText(string(val))
	case string:
		return parseRatioText(val)
	default:
		return 0.0
	}
}

func parseIntText(s string) int64 {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "+")
	if cleaned == "" {
		return 0
	}

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err == nil {
		return n
	}

	// Upstream occasionally sends integral values as decimals ("1234.0")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}

func parseRatioText(s string) float64 {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "%", "")
	cleaned = strings.TrimPrefix(cleaned, "+")
	if cleaned == "" {
		return 0.0
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0
	}
	return f
}

// FormatQuant renders any upstream value as a thousands-grouped share count
// for display. Unparseable input renders as "0", matching the normalizer
// fallback so report consumers never crash on null fields.
func FormatQuant(v interface{}) string {
	return Comma(ToInt(v))
}

// Comma formats n with thousands separators.
func Comma(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// FormatRatio renders a ratio with two decimals and a "%" suffix.
func FormatRatio(v interface{}) string {
	return fmt.Sprintf("%.2f%%", ToRatio(v))
}
