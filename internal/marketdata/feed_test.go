package marketdata

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/quantlab/riskd/pkg/config"
	"github.com/quantlab/riskd/pkg/httputil"
	"github.com/quantlab/riskd/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error", LogFormat: "json"})
}

func testFeedClient(t *testing.T, server *httptest.Server) *FeedClient {
	t.Helper()
	log := testLogger()
	cfg := &config.Config{}
	cfg.Feed.BaseURL = server.URL
	cfg.Feed.QuoteURL = server.URL
	cfg.Feed.RateLimit = 1000 // 테스트에서 리밋 대기 없음
	return NewFeedClient(cfg, httputil.New(log, 5*time.Second).DisableRetry(), log)
}

const sampleCSV = `Date,Open,High,Low,Close,Volume
2026-01-02,100.5,102.0,99.8,101.2,1200000
2026-01-05,101.0,103.5,100.9,103.1,980000
2026-01-06,103.0,103.2,101.5,102.4,1100000
`

func TestFetchDailyPrices(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	client := testFeedClient(t, server)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	prices, err := client.FetchDailyPrices(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("FetchDailyPrices failed: %v", err)
	}

	if len(prices) != 3 {
		t.Fatalf("got %d prices, want 3", len(prices))
	}
	if prices[0].Close != 101.2 {
		t.Errorf("first close = %v, want 101.2", prices[0].Close)
	}
	if prices[2].Volume != 1100000 {
		t.Errorf("last volume = %d, want 1100000", prices[2].Volume)
	}

	// 심볼 정규화와 기간 파라미터가 쿼리에 포함돼야 함
	for _, want := range []string{"s=aapl.us", "d1=20260101", "d2=20260131", "i=d"} {
		if !containsParam(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func containsParam(query, param string) bool {
	for _, part := range splitQuery(query) {
		if part == param {
			return true
		}
	}
	return false
}

func splitQuery(query string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(query); i++ {
		if i == len(query) || query[i] == '&' {
			parts = append(parts, query[start:i])
			start = i + 1
		}
	}
	return parts
}

func TestFetchDailyPricesNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("No data"))
	}))
	defer server.Close()

	client := testFeedClient(t, server)
	_, err := client.FetchDailyPrices(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
	if err == nil {
		t.Fatal("expected error for missing symbol")
	}
	assertFeedErrIs(t, err, ErrSymbolNotFound)
}

func TestFetchDailyPricesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := testFeedClient(t, server)
	_, err := client.FetchDailyPrices(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	assertFeedErrIs(t, err, ErrFeedUnavailable)
}

func TestParseDailyCSVSkipsMalformedRows(t *testing.T) {
	body := `Date,Open,High,Low,Close,Volume
2026-01-02,100,101,99,100.5,1000
not-a-date,1,2,3,4,5
2026-01-05,-,-,-,-,0
2026-01-06,101,102,100,101.5,2000
`
	prices, err := parseDailyCSV(body)
	if err != nil {
		t.Fatalf("parseDailyCSV failed: %v", err)
	}
	// 날짜 파싱 불가 행은 제거, 결측 종가는 NaN으로 통과 (검증 단계에서 제거)
	if len(prices) != 3 {
		t.Fatalf("got %d rows, want 3", len(prices))
	}
	if !math.IsNaN(prices[1].Close) {
		t.Errorf("missing close = %v, want NaN marker", prices[1].Close)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AAPL", "aapl.us"},
		{" msft ", "msft.us"},
		{"^spx", "^spx.us"},
		{"btc.v", "btc.v"}, // 접미사가 이미 있으면 유지
	}
	for _, tt := range tests {
		if got := normalizeSymbol(tt.in); got != tt.want {
			t.Errorf("normalizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetchQuoteScrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<span id="aq_aapl.us_c2">231.45</span>
		</body></html>`))
	}))
	defer server.Close()

	client := testFeedClient(t, server)
	quote, err := client.FetchQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchQuote failed: %v", err)
	}
	if quote.Price != 231.45 {
		t.Errorf("price = %v, want 231.45", quote.Price)
	}
	if quote.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", quote.Symbol)
	}
}

func TestFetchQuoteFallsBackToDailyClose(t *testing.T) {
	// HTML에 가격 요소가 없으면 일별 종가로 폴백
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("i") == "d" {
			w.Write([]byte(sampleCSV))
			return
		}
		w.Write([]byte(`<html><body>maintenance</body></html>`))
	}))
	defer server.Close()

	client := testFeedClient(t, server)
	quote, err := client.FetchQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchQuote failed: %v", err)
	}
	if quote.Price != 102.4 {
		t.Errorf("fallback price = %v, want last daily close 102.4", quote.Price)
	}
}
