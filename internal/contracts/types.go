package contracts

// TrendLabel classifies the sign distribution of a short net-buy window.
type TrendLabel string

const (
	TrendStrongBuy  TrendLabel = "strong_buy"
	TrendBuy        TrendLabel = "buy"
	TrendNeutral    TrendLabel = "neutral"
	TrendSell       TrendLabel = "sell"
	TrendStrongSell TrendLabel = "strong_sell"
)

// Recommendation is derived from the composite supply/demand score.
type Recommendation string

const (
	RecommendStrongBuy  Recommendation = "strong_buy"
	RecommendBuy        Recommendation = "buy"
	RecommendHold       Recommendation = "hold"
	RecommendSell       Recommendation = "sell"
	RecommendStrongSell Recommendation = "strong_sell"
)

// Security represents a tracked listing. Securities are upserted from the
// universe build and deactivated rather than deleted.
type Security struct {
	Code       string `json:"code"` // 종목코드 (exchange code)
	Name       string `json:"name"`
	Market     string `json:"market"` // KOSPI, KOSDAQ
	Industry   string `json:"industry"`
	Product    string `json:"product"`
	ListedDate string `json:"listed_date,omitempty"` // YYYY-MM-DD
	Active     bool   `json:"active"`
}

// FlowRecord is one canonical daily supply/demand row per (security, date).
// All numeric fields are populated; the parser's normalizer guarantees
// zero fallbacks instead of missing values.
type FlowRecord struct {
	Code             string  `json:"code"`
	Date             string  `json:"date"` // YYYY-MM-DD
	ClosePrice       int64   `json:"close_price"`
	PriceChange      int64   `json:"price_change"`
	ChangeDirection  string  `json:"change_direction"`
	ChangeRate       float64 `json:"change_rate"` // 등락률 (%), 2 decimals
	ForeignNet       int64   `json:"foreign_net"` // 외국인 순매수
	ForeignHoldRatio float64 `json:"foreign_hold_ratio"`
	InstitutionNet   int64   `json:"institution_net"` // 기관 순매수
	IndividualNet    int64   `json:"individual_net"`  // 개인 순매수
	Volume           int64   `json:"volume"`
	NetInstitutional int64   `json:"net_institutional_buy"` // foreign + institution
	SupplyBalance    int64   `json:"supply_demand_balance"` // net institutional + individual
}

// LegTrend holds the per-investor-category analysis of one window.
type LegTrend struct {
	Label  TrendLabel `json:"label"`
	Streak int        `json:"streak"` // 연속 매수(+)/매도(-) 일수
	Total  int64      `json:"total"`  // window-summed net buy
}

// TrendSnapshot is the derived analysis for one security at one date.
// Recomputed fresh on every run; the same (code, date, period) key is
// overwritten, never merged.
type TrendSnapshot struct {
	Code           string         `json:"code"`
	Name           string         `json:"name,omitempty"`
	AnalysisDate   string         `json:"analysis_date"` // YYYY-MM-DD
	PeriodType     string         `json:"period_type"`   // daily
	WindowDays     int            `json:"window_days"`
	Foreign        LegTrend       `json:"foreign"`
	Institution    LegTrend       `json:"institution"`
	Individual     LegTrend       `json:"individual"`
	Score          int            `json:"score"` // 0-100
	Recommendation Recommendation `json:"recommendation"`
}

// FlowAggregate is the cheap pre-filter row for the favorites ranking:
// per-security sums over a lookback window.
type FlowAggregate struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	ForeignTotal     int64  `json:"foreign_total"`
	InstitutionTotal int64  `json:"institution_total"`
}

// Combined returns the magnitude used to order pre-filter candidates.
func (a FlowAggregate) Combined() int64 {
	return a.ForeignTotal + a.InstitutionTotal
}

// Favorite is one ranked co-accumulation candidate with its authoritative
// recomputed score.
type Favorite struct {
	Code             string         `json:"code"`
	Name             string         `json:"name"`
	ForeignTotal     int64          `json:"foreign_total"`
	InstitutionTotal int64          `json:"institution_total"`
	CombinedTotal    int64          `json:"combined_total"`
	Score            int            `json:"score"`
	Recommendation   Recommendation `json:"recommendation"`
}
