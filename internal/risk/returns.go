package risk

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// Return Series Builder
// =============================================================================

// BuildReturns 가격 시계열에서 일별 수익률 시계열 생성
// prices: 날짜 오름차순, 거래일당 1개, 중복 없음 (피드 협력자 보장)
// 종가가 0 이하이거나 NaN/Inf인 행은 차분 전에 제거
// 유효 가격이 2개 미만이면 ErrInsufficientData
// 입력을 변경하지 않음
func BuildReturns(symbol string, prices []PricePoint, returnType ReturnType) (*ReturnSeries, error) {
	// 유효 행만 필터링 (원본 비변경)
	valid := make([]PricePoint, 0, len(prices))
	for _, p := range prices {
		if p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			continue
		}
		valid = append(valid, p)
	}

	if len(valid) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 valid price points, got %d",
			ErrInsufficientData, len(valid))
	}

	series := ReturnSeries{
		Symbol:  symbol,
		Type:    returnType,
		Dates:   make([]time.Time, 0, len(valid)-1),
		Returns: make([]float64, 0, len(valid)-1),
	}

	for i := 1; i < len(valid); i++ {
		var r float64
		switch returnType {
		case ReturnLog:
			r = math.Log(valid[i].Close / valid[i-1].Close)
		default:
			r = valid[i].Close/valid[i-1].Close - 1
		}
		series.Dates = append(series.Dates, valid[i].Date)
		series.Returns = append(series.Returns, r)
	}

	return &series, nil
}
