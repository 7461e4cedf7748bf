package marketdata

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantlab/riskd/internal/risk"
)

func pricePoint(daysAgo int, close float64) risk.PricePoint {
	return risk.PricePoint{
		Date:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		Close: close,
	}
}

func TestValidatePrices(t *testing.T) {
	prices := []risk.PricePoint{
		pricePoint(4, 100),
		pricePoint(3, 0),          // 무효
		pricePoint(2, math.NaN()), // 무효
		pricePoint(1, -3),         // 무효
		pricePoint(0, 105),
		{Close: 101}, // 날짜 없음 → 무효
	}

	valid, report := ValidatePrices(prices)

	require.Len(t, valid, 2)
	assert.Equal(t, 6, report.Total)
	assert.Equal(t, 4, report.Dropped)
	assert.Equal(t, 2, report.Valid)
}

func TestValidatePricesSortsDescendingInput(t *testing.T) {
	// 최신순으로 온 피드 데이터는 오름차순으로 교정
	prices := []risk.PricePoint{
		pricePoint(0, 105),
		pricePoint(1, 104),
		pricePoint(2, 103),
	}

	valid, report := ValidatePrices(prices)

	require.Len(t, valid, 3)
	assert.Equal(t, 3, report.Reversed, "descending input should be reported as reversed")
	for i := 1; i < len(valid); i++ {
		assert.True(t, valid[i-1].Date.Before(valid[i].Date),
			"output not in ascending date order: %v before %v", valid[i-1].Date, valid[i].Date)
	}
}

func TestValidatePricesEmpty(t *testing.T) {
	valid, report := ValidatePrices(nil)
	assert.Empty(t, valid)
	assert.Equal(t, ValidationReport{}, report)
}
