package naver

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/wonny/sugup/pkg/httputil"
	"github.com/wonny/sugup/pkg/logger"
)

// Client handles communication with Naver Finance
// ⭐ SSOT: Naver Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient    *httputil.Client
	logger        *logger.Logger
	baseURL       string
	mobileBaseURL string
}

// NewClient creates a new Naver Finance client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL, mobileBaseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://finance.naver.com"
	}
	if mobileBaseURL == "" {
		mobileBaseURL = "https://m.stock.naver.com"
	}
	return &Client{
		httpClient:    httpClient,
		logger:        log,
		baseURL:       baseURL,
		mobileBaseURL: mobileBaseURL,
	}
}

// fetchJSON performs a GET with browser-like headers and returns the body.
func (c *Client) fetchJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://m.stock.naver.com/")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
