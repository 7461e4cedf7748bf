package marketdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/quantlab/riskd/internal/risk"
	"github.com/quantlab/riskd/pkg/config"
	"github.com/quantlab/riskd/pkg/httputil"
	"github.com/quantlab/riskd/pkg/logger"
)

// FeedClient Stooq 일별 시세 피드 클라이언트
// ⭐ SSOT: 시세 피드 HTTP 호출은 이 클라이언트에서만
type FeedClient struct {
	httpClient *httputil.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
	baseURL    string
	quoteURL   string
}

// NewFeedClient creates a new feed client
// 피드 예절: 설정된 초당 요청 수로 전역 레이트 리밋
func NewFeedClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *FeedClient {
	burst := int(cfg.Feed.RateLimit)
	if burst < 1 {
		burst = 1
	}
	return &FeedClient{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Feed.RateLimit), burst),
		logger:     log.WithField("module", "feed"),
		baseURL:    cfg.Feed.BaseURL,
		quoteURL:   cfg.Feed.QuoteURL,
	}
}

// FetchDailyPrices 일별 시세 이력 조회 (CSV 다운로드 엔드포인트)
// 반환 순서는 날짜 오름차순
func (c *FeedClient) FetchDailyPrices(ctx context.Context, symbol string, from, to time.Time) ([]risk.PricePoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("s", normalizeSymbol(symbol))
	params.Set("d1", from.Format("20060102"))
	params.Set("d2", to.Format("20060102"))
	params.Set("i", "d")

	fullURL := fmt.Sprintf("%s/?%s", strings.TrimRight(c.baseURL, "/"), params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrFeedUnavailable, err)
	}

	prices, err := parseDailyCSV(string(body))
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(prices),
	}).Debug("Fetched daily prices")
	return prices, nil
}

// parseDailyCSV 피드 CSV 응답 파싱
// 형식: Date,Open,High,Low,Close,Volume. 파싱 불가 행은 건너뜀
func parseDailyCSV(body string) ([]risk.PricePoint, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || strings.HasPrefix(trimmed, "No data") {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(trimmed))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", ErrFeedUnavailable, err)
	}

	var prices []risk.PricePoint
	for i, row := range records {
		if i == 0 || len(row) < 5 {
			continue // 헤더 또는 불완전 행
		}

		date, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			continue
		}

		open := toFloat(row[1])
		high := toFloat(row[2])
		low := toFloat(row[3])
		closePrice := toFloat(row[4])

		var volume int64
		if len(row) >= 6 {
			volume, _ = strconv.ParseInt(strings.TrimSpace(row[5]), 10, 64)
		}

		prices = append(prices, risk.PricePoint{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return prices, nil
}

// toFloat 피드 숫자 필드 파싱 (결측은 NaN으로 표시, 검증 단계에서 제거)
func toFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// normalizeSymbol 피드 심볼 표기로 정규화
// 접미사 없는 심볼은 미국 시장으로 간주 (AAPL → aapl.us)
func normalizeSymbol(symbol string) string {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if !strings.Contains(s, ".") {
		s += ".us"
	}
	return s
}
