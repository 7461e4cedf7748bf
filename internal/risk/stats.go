package risk

import (
	"math"
	"sort"
)

// =============================================================================
// 통계 유틸리티
// =============================================================================

// Mean 평균 계산
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev 표본 표준편차 (n-1 분모)
// 전체 엔진에서 표본 표준편차로 통일
// 상수 시계열은 정확히 0 반환 (평균 계산의 부동소수점 잔차 무시)
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var sumSq, scale float64
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
		scale += v * v
	}
	if zeroVariance(sumSq, scale) {
		return 0
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

// zeroVarianceEps 상수 시계열 판정 임계값
const zeroVarianceEps = 1e-12

// zeroVariance 편차 제곱합이 값 제곱합 대비 무시 가능한지 판정
// varSum: Σ(v-mean)², scale: Σv². 상수 시계열의 참 분산은 0이지만
// 평균의 반올림 잔차가 미세한 양수 분산을 만들 수 있어 정확한 0 비교는 불가
func zeroVariance(varSum, scale float64) bool {
	return varSum <= zeroVarianceEps*scale
}

// Percentile 백분위수 계산 (선형 보간)
// sorted: 오름차순 정렬된 값, p: [0, 100]
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	idx := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	// 선형 보간
	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// NormInv 정규분포 역함수 (Quantile Function)
// Beasley-Springer-Moro approximation
func NormInv(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}

	// 일반적인 신뢰수준에 대한 빠른 반환
	switch {
	case p == 0.99:
		return 2.326
	case p == 0.95:
		return 1.645
	case p == 0.90:
		return 1.282
	case p == 0.975:
		return 1.96
	}

	a := []float64{
		-3.969683028665376e+01,
		2.209460984245205e+02,
		-2.759285104469687e+02,
		1.383577518672690e+02,
		-3.066479806614716e+01,
		2.506628277459239e+00,
	}
	b := []float64{
		-5.447609879822406e+01,
		1.615858368580409e+02,
		-1.556989798598866e+02,
		6.680131188771972e+01,
		-1.328068155288572e+01,
	}
	c := []float64{
		-7.784894002430293e-03,
		-3.223964580411365e-01,
		-2.400758277161838e+00,
		-2.549732539343734e+00,
		4.374664141464968e+00,
		2.938163982698783e+00,
	}
	d := []float64{
		7.784695709041462e-03,
		3.224671290700398e-01,
		2.445134137142996e+00,
		3.754408661907416e+00,
	}

	pLow := 0.02425
	pHigh := 1 - pLow

	var q, r float64

	if p < pLow {
		q = math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	} else if p <= pHigh {
		q = p - 0.5
		r = q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	} else {
		q = math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	}
}

// NormPDF 정규분포 확률밀도함수
func NormPDF(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

// sortedCopy 원본을 변경하지 않고 오름차순 정렬 복사본 반환
func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
