// Package krx fetches the corporation listing published by KIND (KRX's
// disclosure portal). The download endpoint serves an EUC-KR encoded HTML
// table despite its .xls content disposition.
package krx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/wonny/sugup/pkg/httputil"
	"github.com/wonny/sugup/pkg/logger"
)

// Client handles communication with the KIND corp list endpoint
// ⭐ SSOT: KRX 상장사 목록 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	listingURL string
}

// NewClient creates a new KRX listing client
func NewClient(httpClient *httputil.Client, log *logger.Logger, listingURL string) *Client {
	if listingURL == "" {
		listingURL = "https://kind.krx.co.kr/corpgeneral/corpList.do?method=download&searchType=13"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		listingURL: listingURL,
	}
}

// ListedCompany is one row of the KIND corp list.
type ListedCompany struct {
	Name       string // 회사명
	Code       string // 종목코드 (6자리)
	Industry   string // 업종
	Product    string // 주요제품
	ListedDate string // 상장일 YYYY-MM-DD
}

// FetchListing downloads and parses the full corp list.
func (c *Client) FetchListing(ctx context.Context) ([]ListedCompany, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	companies, err := parseListingHTML(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.WithField("count", len(companies)).Debug("Fetched KRX listing")
	return companies, nil
}

// parseListingHTML parses the EUC-KR HTML table.
// Column order: 회사명 | 종목코드 | 업종 | 주요제품 | 상장일 | ...
func parseListingHTML(r io.Reader) ([]ListedCompany, error) {
	decoded := transform.NewReader(r, korean.EUCKR.NewDecoder())

	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, fmt.Errorf("parse listing HTML: %w", err)
	}

	var companies []ListedCompany
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}

		code := strings.TrimSpace(cells.Eq(1).Text())
		if !isStockCode(code) {
			return
		}

		companies = append(companies, ListedCompany{
			Name:       strings.TrimSpace(cells.Eq(0).Text()),
			Code:       code,
			Industry:   strings.TrimSpace(cells.Eq(2).Text()),
			Product:    strings.TrimSpace(cells.Eq(3).Text()),
			ListedDate: strings.TrimSpace(cells.Eq(4).Text()),
		})
	})

	return companies, nil
}

// isStockCode reports whether s is a 6-digit exchange code.
func isStockCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
