package risk

import (
	"fmt"
	"math"
	"time"
)

// =============================================================================
// Volatility
// =============================================================================

// Volatility 일/연 변동성 계산
// 일 변동성 = 수익률의 표본 표준편차 (n-1), 연환산 = 일 × √252
func Volatility(returns []float64) (daily, annual float64, err error) {
	if len(returns) < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 returns for volatility, got %d",
			ErrInsufficientData, len(returns))
	}

	daily = StdDev(returns)
	annual = daily * math.Sqrt(TradingDaysPerYear)
	return daily, annual, nil
}

// =============================================================================
// Sharpe Ratio
// =============================================================================

// SharpeRatio 위험조정수익률 계산
// Sharpe = (mean(일별 수익률) × 252 − riskFreeRate) / 연 변동성
// riskFreeRate: 연 무위험 수익률 (미지정 시 0)
// 연 변동성이 정확히 0이면 ErrUndefinedRatio (NaN/Inf를 조용히 반환하지 않음)
func SharpeRatio(returns []float64, riskFreeRate float64) (float64, error) {
	_, annualVol, err := Volatility(returns)
	if err != nil {
		return 0, err
	}

	if annualVol == 0 {
		return 0, fmt.Errorf("%w: return series has zero variance", ErrUndefinedRatio)
	}

	annualReturn := Mean(returns) * TradingDaysPerYear
	return (annualReturn - riskFreeRate) / annualVol, nil
}

// =============================================================================
// Maximum Drawdown
// =============================================================================

// MaxDrawdown 최대 낙폭 계산
// 수익률을 1.0부터 복리 누적한 wealth 곡선에서 peak 대비 최대 하락폭
// 반환: (최대 낙폭, underwater 곡선), 둘 다 하락을 양수로 표현
// underwater[i] = i번째 수익률 반영 시점의 낙폭 (시각화 소비자용)
func MaxDrawdown(returns []float64) (float64, []float64, error) {
	if len(returns) == 0 {
		return 0, nil, fmt.Errorf("%w: empty return series", ErrInsufficientData)
	}

	underwater := make([]float64, len(returns))
	wealth := 1.0
	peak := 1.0
	maxDD := 0.0

	for i, r := range returns {
		wealth *= 1 + r
		if wealth > peak {
			peak = wealth
		}
		dd := (peak - wealth) / peak
		underwater[i] = dd
		if dd > maxDD {
			maxDD = dd
		}
	}

	return maxDD, underwater, nil
}

// =============================================================================
// Beta (벤치마크 민감도)
// =============================================================================

// minBetaOverlap 베타 계산에 필요한 최소 공통 관측치 수
const minBetaOverlap = 20

// Beta 벤치마크 대비 베타 계산
// beta = Cov(asset, benchmark) / Var(benchmark)
// 두 시계열을 날짜 교집합으로 정렬 후 계산; 공통 관측치 20개 미만이면
// ErrInsufficientOverlap, 벤치마크 분산 0이면 ErrUndefinedRatio
func Beta(asset, benchmark ReturnSeries) (float64, error) {
	a, b := alignPair(asset, benchmark)
	if len(a) < minBetaOverlap {
		return 0, fmt.Errorf("%w: %d overlapping points, need %d",
			ErrInsufficientOverlap, len(a), minBetaOverlap)
	}

	meanA := Mean(a)
	meanB := Mean(b)

	var cov, varB, scaleB float64
	for i := range a {
		cov += (a[i] - meanA) * (b[i] - meanB)
		varB += (b[i] - meanB) * (b[i] - meanB)
		scaleB += b[i] * b[i]
	}

	// 상수 벤치마크는 평균의 반올림 잔차로 varB가 정확히 0이 아닐 수 있음
	if zeroVariance(varB, scaleB) {
		return 0, fmt.Errorf("%w: benchmark has zero variance", ErrUndefinedRatio)
	}

	return cov / varB, nil
}

// alignPair 두 시계열을 날짜 교집합으로 정렬
// 날짜 순서는 첫 번째 시계열 기준 유지
func alignPair(x, y ReturnSeries) ([]float64, []float64) {
	yByDate := make(map[int64]float64, y.Len())
	for i, d := range y.Dates {
		yByDate[dateKey(d)] = y.Returns[i]
	}

	var xs, ys []float64
	for i, d := range x.Dates {
		if v, ok := yByDate[dateKey(d)]; ok {
			xs = append(xs, x.Returns[i])
			ys = append(ys, v)
		}
	}
	return xs, ys
}

// dateKey 날짜를 일 단위 키로 정규화 (시각/타임존 차이 무시)
func dateKey(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}
