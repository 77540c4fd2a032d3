package krx

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func TestParseListingHTML(t *testing.T) {
	// KIND serves EUC-KR; encode the fixture the same way.
	utf8HTML := `
		<html><body><table>
		<tr><th>회사명</th><th>종목코드</th><th>업종</th><th>주요제품</th><th>상장일</th><th>결산월</th></tr>
		<tr><td>삼성전자</td><td>005930</td><td>통신 및 방송 장비 제조업</td><td>반도체</td><td>1975-06-11</td><td>12월</td></tr>
		<tr><td>SK하이닉스</td><td>000660</td><td>반도체 제조업</td><td>DRAM</td><td>1996-12-26</td><td>12월</td></tr>
		<tr><td>깨진행</td><td>bad</td></tr>
		</table></body></html>`

	var buf bytes.Buffer
	w := transform.NewWriter(&buf, korean.EUCKR.NewEncoder())
	if _, err := w.Write([]byte(utf8HTML)); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	_ = w.Close()

	companies, err := parseListingHTML(&buf)
	if err != nil {
		t.Fatalf("parseListingHTML failed: %v", err)
	}

	if len(companies) != 2 {
		t.Fatalf("got %d companies, want 2", len(companies))
	}

	first := companies[0]
	if first.Code != "005930" {
		t.Errorf("Code = %s, want 005930", first.Code)
	}
	if first.Name != "삼성전자" {
		t.Errorf("Name = %s, want 삼성전자", first.Name)
	}
	if !strings.Contains(first.Industry, "제조업") {
		t.Errorf("Industry = %s, want industry text", first.Industry)
	}
	if first.ListedDate != "1975-06-11" {
		t.Errorf("ListedDate = %s", first.ListedDate)
	}
}

func TestIsStockCode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"005930", true},
		{"000660", true},
		{"00593", false},
		{"0059301", false},
		{"00593a", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isStockCode(tt.in); got != tt.want {
			t.Errorf("isStockCode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
