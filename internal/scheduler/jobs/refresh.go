package jobs

import (
	"context"
	"fmt"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/pkg/logger"
)

// PriceRefreshJob 워치리스트 심볼의 시세 이력을 야간에 갱신
// ⭐ SSOT: 정기 시세 갱신은 이 잡에서만
type PriceRefreshJob struct {
	market   *marketdata.Service
	symbols  []string
	period   marketdata.Period
	schedule string
	logger   *logger.Logger
}

// NewPriceRefreshJob creates a new price refresh job
// schedule이 비어 있으면 매일 새벽 1시 (장 마감 후, 피드 갱신 이후)
func NewPriceRefreshJob(market *marketdata.Service, symbols []string, period marketdata.Period, schedule string, log *logger.Logger) *PriceRefreshJob {
	if schedule == "" {
		schedule = "0 1 * * *"
	}
	return &PriceRefreshJob{
		market:   market,
		symbols:  symbols,
		period:   period,
		schedule: schedule,
		logger:   log.WithField("job", "price-refresh"),
	}
}

// Name returns the job name
func (j *PriceRefreshJob) Name() string { return "price-refresh" }

// Schedule returns the cron expression
func (j *PriceRefreshJob) Schedule() string { return j.schedule }

// Run refreshes every watchlist symbol
// 심볼 단위 부분 실패 허용: 실패 심볼만 모아 마지막에 오류로 보고
func (j *PriceRefreshJob) Run(ctx context.Context) error {
	var failed []string

	for _, symbol := range j.symbols {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rows, err := j.market.Refresh(ctx, symbol, j.period)
		if err != nil {
			j.logger.WithError(err).WithField("symbol", symbol).Warn("Symbol refresh failed")
			failed = append(failed, symbol)
			continue
		}

		j.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"rows":   rows,
		}).Debug("Symbol refreshed")
	}

	if len(failed) > 0 {
		return fmt.Errorf("refresh failed for %d/%d symbols: %v", len(failed), len(j.symbols), failed)
	}

	j.logger.WithField("symbols", len(j.symbols)).Info("Watchlist refresh completed")
	return nil
}
