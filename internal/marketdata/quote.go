package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// FetchQuote 현재가 조회
// 1차: 시세 페이지 HTML 스크랩, 실패 시 최근 일별 종가로 폴백
// ⭐ SSOT: 현재가 조회는 이 함수에서만
func (c *FeedClient) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	quote, err := c.scrapeQuote(ctx, symbol)
	if err == nil {
		return quote, nil
	}

	c.logger.WithError(err).WithField("symbol", symbol).Warn("Quote scrape failed, falling back to daily close")

	// 폴백: 최근 7일 일별 시세의 마지막 종가
	now := time.Now()
	prices, err := c.FetchDailyPrices(ctx, symbol, now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, err
	}

	last := prices[len(prices)-1]
	return &Quote{
		Symbol:    strings.ToUpper(symbol),
		Price:     last.Close,
		AsOf:      last.Date,
		FetchedAt: now,
	}, nil
}

// scrapeQuote 시세 페이지에서 현재가 추출
func (c *FeedClient) scrapeQuote(ctx context.Context, symbol string) (*Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("s", normalizeSymbol(symbol))
	fullURL := fmt.Sprintf("%s/?%s", strings.TrimRight(c.quoteURL, "/"), params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrFeedUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", ErrFeedUnavailable, err)
	}

	// 가격 셀: id가 aq_<symbol>_c 로 시작하는 span
	normalized := normalizeSymbol(symbol)
	var priceText string
	doc.Find(fmt.Sprintf("span[id^='aq_%s_c']", normalized)).EachWithBreak(func(i int, s *goquery.Selection) bool {
		priceText = strings.TrimSpace(s.Text())
		return false
	})

	if priceText == "" {
		return nil, fmt.Errorf("%w: price element not found for %s", ErrSymbolNotFound, symbol)
	}

	price, err := strconv.ParseFloat(strings.ReplaceAll(priceText, ",", ""), 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("%w: unparsable price %q", ErrFeedUnavailable, priceText)
	}

	now := time.Now()
	return &Quote{
		Symbol:    strings.ToUpper(symbol),
		Price:     price,
		AsOf:      now,
		FetchedAt: now,
	}, nil
}
