package risk

import (
	"fmt"
	"math"
	"sort"
)

// =============================================================================
// Correlation Engine
// =============================================================================

// minCorrelationOverlap 상관관계 계산에 필요한 최소 공통 관측치 수
const minCorrelationOverlap = 2

// 다변화 평가 임계값 (평균 |상관계수| 기준, 단조)
const (
	wellDiversifiedBelow     = 0.3
	moderatelyDiversifiedTo  = 0.6
	assessWellDiversified    = "well diversified"
	assessModerateDiversity  = "moderately diversified"
	assessConcentrated       = "concentrated"
	assessSingleAsset        = "single asset"
)

// Correlation 심볼별 수익률 시계열에서 Pearson 상관계수 행렬 계산
// 모든 시계열을 공통 날짜 교집합으로 정렬 후 계산
// 교집합 관측치가 2개 미만이면 ErrInsufficientOverlap
// 대각선은 정확히 1.0, 행렬은 대칭
func Correlation(series map[string]ReturnSeries) (*CorrelationMatrix, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no return series provided", ErrInsufficientData)
	}

	// 심볼 정렬로 결정적 인덱스 부여
	symbols := make([]string, 0, len(series))
	for sym := range series {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	aligned, overlap, err := alignAll(symbols, series)
	if err != nil {
		return nil, err
	}

	n := len(symbols)
	coeffs := make([][]float64, n)
	for i := range coeffs {
		coeffs[i] = make([]float64, n)
		coeffs[i][i] = 1.0 // 대각선은 정의상 정확히 1
	}

	var sumAbs float64
	var pairs int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := pearson(aligned[i], aligned[j])
			coeffs[i][j] = c
			coeffs[j][i] = c
			sumAbs += math.Abs(c)
			pairs++
		}
	}

	meanAbs := 0.0
	if pairs > 0 {
		meanAbs = sumAbs / float64(pairs)
	}

	return &CorrelationMatrix{
		Symbols:            symbols,
		Coeffs:             coeffs,
		Overlap:            overlap,
		MeanAbsCorrelation: meanAbs,
		Diversification:    assessDiversification(n, meanAbs),
	}, nil
}

// alignAll 모든 시계열을 공통 날짜 교집합으로 정렬
// 반환: 심볼 순서와 동일한 인덱스의 수익률 배열들과 공통 관측치 수
func alignAll(symbols []string, series map[string]ReturnSeries) ([][]float64, int, error) {
	// 첫 시계열의 날짜에서 시작해 교집합 축소
	common := make(map[int64]bool)
	for _, d := range series[symbols[0]].Dates {
		common[dateKey(d)] = true
	}
	for _, sym := range symbols[1:] {
		next := make(map[int64]bool)
		for _, d := range series[sym].Dates {
			k := dateKey(d)
			if common[k] {
				next[k] = true
			}
		}
		common = next
	}

	if len(common) < minCorrelationOverlap {
		return nil, 0, fmt.Errorf("%w: %d common dates across %d series, need %d",
			ErrInsufficientOverlap, len(common), len(symbols), minCorrelationOverlap)
	}

	// 교집합 날짜를 정렬해 모든 시계열이 같은 순서를 공유
	keys := make([]int64, 0, len(common))
	for k := range common {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	keyIndex := make(map[int64]int, len(keys))
	for i, k := range keys {
		keyIndex[k] = i
	}

	aligned := make([][]float64, len(symbols))
	for si, sym := range symbols {
		s := series[sym]
		row := make([]float64, len(keys))
		for i, d := range s.Dates {
			if idx, ok := keyIndex[dateKey(d)]; ok {
				row[idx] = s.Returns[i]
			}
		}
		aligned[si] = row
	}

	return aligned, len(keys), nil
}

// pearson Pearson 상관계수
// 어느 한쪽의 분산이 0이면 상관 정의 불가 → 0으로 보고 (문서화된 선택)
func pearson(x, y []float64) float64 {
	meanX := Mean(x)
	meanY := Mean(y)

	var cov, varX, varY, scaleX, scaleY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
		scaleX += x[i] * x[i]
		scaleY += y[i] * y[i]
	}

	if zeroVariance(varX, scaleX) || zeroVariance(varY, scaleY) {
		return 0
	}

	c := cov / math.Sqrt(varX*varY)

	// 부동소수점 오차로 [-1, 1]을 벗어나지 않도록 절단
	if c > 1 {
		return 1
	}
	if c < -1 {
		return -1
	}
	return c
}

// assessDiversification 비대각 분포에서 정성적 다변화 평가
func assessDiversification(n int, meanAbs float64) string {
	if n < 2 {
		return assessSingleAsset
	}
	switch {
	case meanAbs < wellDiversifiedBelow:
		return assessWellDiversified
	case meanAbs < moderatelyDiversifiedTo:
		return assessModerateDiversity
	default:
		return assessConcentrated
	}
}
