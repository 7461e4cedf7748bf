package marketdata

import (
	"math"
	"sort"

	"github.com/quantlab/riskd/internal/risk"
)

// =============================================================================
// 시세 데이터 품질 검증
// =============================================================================

// ValidationReport 검증 결과 요약
type ValidationReport struct {
	Total    int `json:"total"`
	Valid    int `json:"valid"`
	Dropped  int `json:"dropped"`
	Reversed int `json:"reversed"` // 정렬로 교정된 역순 행 수
}

// ValidatePrices 저장 전 시세 행 검증
// 종가가 0 이하이거나 NaN/Inf인 행 제거, 날짜 오름차순 보장
// 검증은 행 단위: 한 행의 결측이 전체 시리즈를 버리지 않음
func ValidatePrices(prices []risk.PricePoint) ([]risk.PricePoint, ValidationReport) {
	report := ValidationReport{Total: len(prices)}

	valid := make([]risk.PricePoint, 0, len(prices))
	for _, p := range prices {
		if p.Close <= 0 || math.IsNaN(p.Close) || math.IsInf(p.Close, 0) {
			report.Dropped++
			continue
		}
		if p.Date.IsZero() {
			report.Dropped++
			continue
		}
		valid = append(valid, p)
	}

	// 순서 보장 (피드에 따라 내림차순으로 오는 경우가 있음)
	if !sort.SliceIsSorted(valid, func(i, j int) bool { return valid[i].Date.Before(valid[j].Date) }) {
		sort.Slice(valid, func(i, j int) bool { return valid[i].Date.Before(valid[j].Date) })
		report.Reversed = len(valid)
	}

	report.Valid = len(valid)
	return valid, report
}
