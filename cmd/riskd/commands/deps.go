package commands

import (
	"fmt"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/pkg/config"
	"github.com/quantlab/riskd/pkg/database"
	"github.com/quantlab/riskd/pkg/httputil"
	"github.com/quantlab/riskd/pkg/logger"
	"github.com/quantlab/riskd/pkg/redis"
)

// stack 커맨드 공용 의존성 묶음
type stack struct {
	cfg    *config.Config
	log    *logger.Logger
	market *marketdata.Service
	db     *database.DB // nil이면 영속 계층 없이 동작
	rdb    *redis.Client
}

// close releases held connections
func (s *stack) close() {
	if s.db != nil {
		s.db.Close()
	}
	if s.rdb != nil {
		s.rdb.Close()
	}
}

// buildStack 설정 로드부터 마켓데이터 서비스까지 공용 와이어링
// withDB=false면 DB 연결을 시도하지 않음 (단발 CLI 커맨드용)
// withDB=true여도 DATABASE_URL 미설정/연결 실패는 경고 후 피드 전용으로 동작
func buildStack(withDB bool) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	var db *database.DB
	var repo *marketdata.PriceRepository
	if withDB && cfg.Database.URL != "" {
		db, err = database.New(cfg)
		if err != nil {
			log.WithError(err).Warn("Database unavailable, continuing without persistence")
			db = nil
		} else {
			repo = marketdata.NewPriceRepository(db.Pool)
		}
	}

	rdb, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		rdb, _ = redis.New(&config.Config{}) // no-op client
	}
	cache := redis.NewCache(rdb, "riskd")

	httpClient := httputil.New(log, cfg.Feed.Timeout)
	feed := marketdata.NewFeedClient(cfg, httpClient, log)
	market := marketdata.NewService(cfg, feed, repo, cache, log)

	return &stack{
		cfg:    cfg,
		log:    log,
		market: market,
		db:     db,
		rdb:    rdb,
	}, nil
}
