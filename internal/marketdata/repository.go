package marketdata

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantlab/riskd/internal/risk"
)

// PriceRepository 일별 시세 영속 저장소
// ⭐ SSOT: 시세 데이터 저장소 접근은 여기서만
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// GetBySymbolAndRange 심볼의 기간 내 시세 조회 (날짜 오름차순)
func (r *PriceRepository) GetBySymbolAndRange(ctx context.Context, symbol string, from, to time.Time) ([]risk.PricePoint, error) {
	query := `
		SELECT trade_date, open_price, high_price, low_price, close_price, volume
		FROM market.daily_prices
		WHERE symbol = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []risk.PricePoint
	for rows.Next() {
		var p risk.PricePoint
		if err := rows.Scan(&p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// GetLatestBySymbol 심볼의 가장 최근 시세 조회
func (r *PriceRepository) GetLatestBySymbol(ctx context.Context, symbol string) (*risk.PricePoint, error) {
	query := `
		SELECT trade_date, open_price, high_price, low_price, close_price, volume
		FROM market.daily_prices
		WHERE symbol = $1
		ORDER BY trade_date DESC
		LIMIT 1
	`

	var p risk.PricePoint
	err := r.pool.QueryRow(ctx, query, symbol).Scan(
		&p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save 단일 시세 행 저장 (upsert)
func (r *PriceRepository) Save(ctx context.Context, symbol string, price risk.PricePoint) error {
	query := `
		INSERT INTO market.daily_prices (symbol, trade_date, open_price, high_price, low_price, close_price, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			open_price = EXCLUDED.open_price,
			high_price = EXCLUDED.high_price,
			low_price = EXCLUDED.low_price,
			close_price = EXCLUDED.close_price,
			volume = EXCLUDED.volume
	`

	_, err := r.pool.Exec(ctx, query,
		symbol, price.Date, price.Open, price.High, price.Low, price.Close, price.Volume,
	)
	return err
}

// SaveBatch 시세 행 일괄 저장
func (r *PriceRepository) SaveBatch(ctx context.Context, symbol string, prices []risk.PricePoint) error {
	if len(prices) == 0 {
		return nil
	}

	for _, price := range prices {
		if err := r.Save(ctx, symbol, price); err != nil {
			return err
		}
	}
	return nil
}

// CountBySymbol 심볼의 저장된 행 수
func (r *PriceRepository) CountBySymbol(ctx context.Context, symbol string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM market.daily_prices WHERE symbol = $1`, symbol,
	).Scan(&count)
	return count, err
}
