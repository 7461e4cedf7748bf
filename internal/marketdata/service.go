package marketdata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quantlab/riskd/internal/risk"
	"github.com/quantlab/riskd/pkg/config"
	"github.com/quantlab/riskd/pkg/logger"
	"github.com/quantlab/riskd/pkg/redis"
)

// Service 시세 제공 서비스
// 조회 순서: 캐시 → 저장소 → 피드 (피드 결과는 저장소와 캐시에 반영)
// ⭐ SSOT: 엔진에 공급되는 시세는 모두 이 서비스를 통해서만
type Service struct {
	feed       *FeedClient
	repo       *PriceRepository // nil이면 영속 계층 생략 (CLI 단독 실행)
	cache      *redis.Cache
	historyTTL time.Duration
	quoteTTL   time.Duration
	logger     *logger.Logger
}

// NewService creates a new market data service
func NewService(cfg *config.Config, feed *FeedClient, repo *PriceRepository, cache *redis.Cache, log *logger.Logger) *Service {
	return &Service{
		feed:       feed,
		repo:       repo,
		cache:      cache,
		historyTTL: cfg.Redis.HistoryTTL,
		quoteTTL:   cfg.Redis.QuoteTTL,
		logger:     log.WithField("module", "marketdata"),
	}
}

// minHistoryRows 저장소 조회 결과를 충분한 이력으로 간주하는 최소 행 수
// 이보다 적으면 피드에서 다시 받아 보강
const minHistoryRows = 2

// History 기간 내 일별 시세 이력 조회
func (s *Service) History(ctx context.Context, symbol string, period Period) ([]risk.PricePoint, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	key := historyKey(symbol, period)

	// 1. 캐시
	var cached []risk.PricePoint
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found && len(cached) >= minHistoryRows {
		s.logger.WithField("symbol", symbol).Debug("History cache hit")
		return cached, nil
	}

	now := time.Now()
	from := period.Start(now)

	// 2. 저장소
	if s.repo != nil {
		stored, err := s.repo.GetBySymbolAndRange(ctx, symbol, from, now)
		if err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Price repository query failed")
		} else if len(stored) >= minHistoryRows {
			s.cacheHistory(ctx, key, stored)
			return stored, nil
		}
	}

	// 3. 피드
	fetched, err := s.feed.FetchDailyPrices(ctx, symbol, from, now)
	if err != nil {
		return nil, err
	}

	valid, report := ValidatePrices(fetched)
	if report.Dropped > 0 {
		s.logger.WithFields(map[string]interface{}{
			"symbol":  symbol,
			"dropped": report.Dropped,
			"total":   report.Total,
		}).Warn("Dropped invalid price rows")
	}
	if len(valid) < minHistoryRows {
		return nil, fmt.Errorf("%w: %d valid rows for %s", ErrSymbolNotFound, len(valid), symbol)
	}

	// 저장 실패는 조회를 막지 않음
	if s.repo != nil {
		if err := s.repo.SaveBatch(ctx, symbol, valid); err != nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Failed to persist prices")
		}
	}
	s.cacheHistory(ctx, key, valid)

	return valid, nil
}

// CurrentPrice 현재가 조회 (짧은 TTL 캐시)
// 피드 실패 시 저장소의 가장 최근 종가로 폴백 (저장소 구성 시)
func (s *Service) CurrentPrice(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	var quote Quote
	err := s.cache.GetOrSet(ctx, quoteKey(symbol), &quote, s.quoteTTL, func() (interface{}, error) {
		return s.lookupQuote(ctx, symbol)
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// lookupQuote 피드 우선 조회, 실패 시 저장소 최근 종가 폴백
func (s *Service) lookupQuote(ctx context.Context, symbol string) (*Quote, error) {
	quote, err := s.feed.FetchQuote(ctx, symbol)
	if err == nil {
		return quote, nil
	}

	if s.repo != nil {
		latest, repoErr := s.repo.GetLatestBySymbol(ctx, symbol)
		if repoErr == nil {
			s.logger.WithError(err).WithField("symbol", symbol).Warn("Quote feed failed, serving last stored close")
			return &Quote{
				Symbol:    symbol,
				Price:     latest.Close,
				AsOf:      latest.Date,
				FetchedAt: time.Now(),
			}, nil
		}
	}
	return nil, err
}

// Refresh 피드에서 최신 이력을 강제로 받아 저장소/캐시 갱신
// 스케줄러의 야간 갱신 잡이 사용
func (s *Service) Refresh(ctx context.Context, symbol string, period Period) (int, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	now := time.Now()

	fetched, err := s.feed.FetchDailyPrices(ctx, symbol, period.Start(now), now)
	if err != nil {
		return 0, err
	}

	valid, report := ValidatePrices(fetched)
	if report.Dropped > 0 {
		s.logger.WithFields(map[string]interface{}{
			"symbol":  symbol,
			"dropped": report.Dropped,
		}).Warn("Dropped invalid price rows during refresh")
	}

	if s.repo != nil {
		if err := s.repo.SaveBatch(ctx, symbol, valid); err != nil {
			return 0, fmt.Errorf("persist prices: %w", err)
		}
		if total, err := s.repo.CountBySymbol(ctx, symbol); err == nil {
			s.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"saved":  len(valid),
				"total":  total,
			}).Info("Refreshed price history")
		}
	}

	// 기간별 캐시 무효화: 다음 조회가 저장소에서 다시 읽도록
	for _, p := range []Period{Period1M, Period3M, Period6M, Period1Y, Period2Y, Period5Y} {
		if err := s.cache.Delete(ctx, historyKey(symbol, p)); err != nil {
			s.logger.WithError(err).Warn("Failed to invalidate history cache")
		}
	}

	return len(valid), nil
}

func (s *Service) cacheHistory(ctx context.Context, key string, prices []risk.PricePoint) {
	if err := s.cache.Set(ctx, key, prices, s.historyTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache history")
	}
}

func historyKey(symbol string, period Period) string {
	return fmt.Sprintf("history:%s:%s", symbol, period)
}

func quoteKey(symbol string) string {
	return fmt.Sprintf("quote:%s", symbol)
}
