package risk

import (
	"fmt"
)

// =============================================================================
// VaR (Value at Risk) Calculation (Historical Simulation)
// =============================================================================

// VaR 과거 수익률 기반 VaR 계산 (Historical Simulation, 분포 가정 없음)
// returns: 일별 수익률 배열 (양수=이익, 음수=손실)
// confidence: 신뢰수준, (0, 1) 구간 필수 (예: 0.95, 0.99)
// 반환값: 손실을 양수로 표현 (예: 0.05 = 5% 손실 가능)
func VaR(returns []float64, confidence float64) (float64, error) {
	if confidence <= 0 || confidence >= 1 {
		return 0, fmt.Errorf("%w: confidence must be in (0, 1), got %v",
			ErrInvalidParameter, confidence)
	}
	if len(returns) == 0 {
		return 0, fmt.Errorf("%w: empty return series", ErrInsufficientData)
	}

	sorted := sortedCopy(returns)

	// VaR: (1-confidence) 백분위수 (선형 보간)
	// 예: 95% VaR = 하위 5% 백분위수
	q := Percentile(sorted, (1-confidence)*100)

	// 손실을 양수로 표현; 해당 분위 수익률이 양수면 손실 없음
	if q < 0 {
		return -q, nil
	}
	return 0, nil
}

// CVaR Conditional VaR (Expected Shortfall) 계산
// VaR 임계값 이하(tail) 수익률의 평균. tail이 비면 CVaR = VaR
func CVaR(returns []float64, confidence float64) (float64, error) {
	varValue, err := VaR(returns, confidence)
	if err != nil {
		return 0, err
	}

	// tail: -VaR 이하의 수익률
	var sum float64
	var count int
	for _, r := range returns {
		if r <= -varValue {
			sum += r
			count++
		}
	}

	if count == 0 {
		// 퇴화된 소표본: tail 없음 → VaR로 대체
		return varValue, nil
	}

	avgTail := sum / float64(count)
	if avgTail < 0 {
		return -avgTail, nil
	}
	return 0, nil
}

// =============================================================================
// Parametric VaR (정규분포 가정, 대안 방법)
// =============================================================================

// ParametricVaR 정규분포 가정 VaR/CVaR 계산
// mean: 평균 수익률, stdDev: 표준편차, confidence: 신뢰수준
// 반환: (VaR, CVaR) 둘 다 손실 양수 표현
func ParametricVaR(mean, stdDev, confidence float64) (float64, float64, error) {
	if confidence <= 0 || confidence >= 1 {
		return 0, 0, fmt.Errorf("%w: confidence must be in (0, 1), got %v",
			ErrInvalidParameter, confidence)
	}

	// Z-score for confidence level (95%: 1.645, 99%: 2.326)
	z := NormInv(confidence)

	varValue := z*stdDev - mean
	if varValue < 0 {
		varValue = 0
	}

	// CVaR ≈ VaR + stdDev * φ(z) / (1-confidence)
	phi := NormPDF(z)
	cvar := varValue + (stdDev * phi / (1 - confidence))

	return varValue, cvar, nil
}
