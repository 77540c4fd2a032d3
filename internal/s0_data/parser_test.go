package s0_data

import (
	"testing"

	"github.com/wonny/sugup/internal/external/naver"
	"github.com/wonny/sugup/pkg/logger"
)

func sampleItem() naver.TrendItem {
	return naver.TrendItem{
		Bizdate:                     "20240115",
		ClosePrice:                  "72,500",
		CompareToPreviousClosePrice: "+500",
		CompareToPreviousPrice:      naver.DirectionLabel{Code: "2", Text: "상승"},
		ForeignerPureBuyQuant:       "+50,000",
		ForeignerHoldRatio:          "52.10",
		OrganPureBuyQuant:           "-12,000",
		IndividualPureBuyQuant:      "-38,000",
		AccumulatedTradingVolume:    "1,000,000",
	}
}

func TestParseItem(t *testing.T) {
	p := NewParser(logger.NewNop())

	record, err := p.parseItem("005930", sampleItem())
	if err != nil {
		t.Fatalf("parseItem failed: %v", err)
	}

	if record.Code != "005930" {
		t.Errorf("Code = %s, want 005930", record.Code)
	}
	if record.Date != "2024-01-15" {
		t.Errorf("Date = %s, want 2024-01-15", record.Date)
	}
	if record.ClosePrice != 72500 {
		t.Errorf("ClosePrice = %d, want 72500", record.ClosePrice)
	}
	if record.PriceChange != 500 {
		t.Errorf("PriceChange = %d, want 500", record.PriceChange)
	}
	if record.ChangeDirection != "상승" {
		t.Errorf("ChangeDirection = %s, want 상승", record.ChangeDirection)
	}

	// 500 / (72500-500) * 100 = 0.6944... → 0.69
	if record.ChangeRate != 0.69 {
		t.Errorf("ChangeRate = %v, want 0.69", record.ChangeRate)
	}

	if record.ForeignNet != 50000 || record.InstitutionNet != -12000 || record.IndividualNet != -38000 {
		t.Errorf("net buys = %d/%d/%d", record.ForeignNet, record.InstitutionNet, record.IndividualNet)
	}
	if record.ForeignHoldRatio != 52.10 {
		t.Errorf("ForeignHoldRatio = %v, want 52.10", record.ForeignHoldRatio)
	}

	// Derived aggregates
	if record.NetInstitutional != 38000 {
		t.Errorf("NetInstitutional = %d, want 38000", record.NetInstitutional)
	}
	if record.SupplyBalance != 0 {
		t.Errorf("SupplyBalance = %d, want 0", record.SupplyBalance)
	}
}

func TestParseItemZeroDenominator(t *testing.T) {
	p := NewParser(logger.NewNop())

	item := sampleItem()
	// close == delta → prev close is zero, rate must not divide
	item.ClosePrice = "500"
	item.CompareToPreviousClosePrice = "500"

	record, err := p.parseItem("005930", item)
	if err != nil {
		t.Fatalf("parseItem failed: %v", err)
	}
	if record.ChangeRate != 0 {
		t.Errorf("ChangeRate = %v, want 0 on zero denominator", record.ChangeRate)
	}
}

func TestParseItemUnparseableNumbers(t *testing.T) {
	p := NewParser(logger.NewNop())

	item := sampleItem()
	item.ClosePrice = nil
	item.ForeignerPureBuyQuant = "N/A"
	item.ForeignerHoldRatio = ""

	record, err := p.parseItem("005930", item)
	if err != nil {
		t.Fatalf("parseItem must not fail on unparseable numerics: %v", err)
	}
	if record.ForeignNet != 0 {
		t.Errorf("ForeignNet = %d, want fallback 0", record.ForeignNet)
	}
	if record.ForeignHoldRatio != 0 {
		t.Errorf("ForeignHoldRatio = %v, want fallback 0", record.ForeignHoldRatio)
	}
}

func TestParseTrendDropsMalformedDates(t *testing.T) {
	p := NewParser(logger.NewNop())

	good := sampleItem()
	bad := sampleItem()
	bad.Bizdate = "2024"

	records := p.ParseTrend("005930", []naver.TrendItem{good, bad, good})
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (malformed dropped, siblings kept)", len(records))
	}
}

func TestReformatBizdate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"20240115", "2024-01-15", false},
		{"19991231", "1999-12-31", false},
		{"2024011", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := reformatBizdate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("reformatBizdate(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("reformatBizdate(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("reformatBizdate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
