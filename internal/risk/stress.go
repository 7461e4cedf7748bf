package risk

import "math"

// =============================================================================
// Stress Scenario Evaluator
// =============================================================================

// DefaultScenarios 기본 스트레스 시나리오 테이블
// 시나리오는 데이터: 추가/삭제에 코드 변경 불필요
var DefaultScenarios = []Scenario{
	{Name: "Moderate Decline", ShockPct: -0.05},
	{Name: "Market Correction", ShockPct: -0.10},
	{Name: "Flash Crash", ShockPct: -0.10},
	{Name: "Bear Market", ShockPct: -0.20},
	{Name: "Black Monday 1987", ShockPct: -0.22},
	{Name: "Severe Recession", ShockPct: -0.30},
	{Name: "COVID Crash", ShockPct: -0.34},
	{Name: "2008 Financial Crisis", ShockPct: -0.38},
}

// 복구 기간 추정 상수
const (
	// recoveryDriftFactor 일 변동성 대비 기대 회복 드리프트 비율
	recoveryDriftFactor = 0.1
	// maxRecoveryDays 복구 기간 상한 (10년)
	maxRecoveryDays = 2520
)

// StressTest 시나리오 테이블을 현재 포지션 가치에 적용
// value: 현재 포지션 가치, dailyVol: 과거 일 변동성 (복구 기간 추정용)
// 결과 수 = 시나리오 수. loss_value = value × shock (음수 = 손실 금액)
func StressTest(value, dailyVol float64, scenarios []Scenario) []StressResult {
	results := make([]StressResult, 0, len(scenarios))

	for _, sc := range scenarios {
		results = append(results, StressResult{
			Scenario:              sc.Name,
			ShockPct:              sc.ShockPct,
			LossPct:               sc.ShockPct,
			LossValue:             value * sc.ShockPct,
			EstimatedRecoveryDays: estimateRecoveryDays(sc.ShockPct, dailyVol),
		})
	}

	return results
}

// estimateRecoveryDays 충격 크기와 변동성에서 복구 기간 추정
// 복구일 ≈ |shock| / (recoveryDriftFactor × dailyVol)
// 충격이 클수록, 변동성이 낮을수록 길어짐 (두 입력 모두에 단조)
// 변동성 0이면 상한으로 절단
func estimateRecoveryDays(shockPct, dailyVol float64) int {
	shock := math.Abs(shockPct)
	if shock == 0 {
		return 0
	}
	if dailyVol <= 0 {
		return maxRecoveryDays
	}

	days := int(math.Ceil(shock / (recoveryDriftFactor * dailyVol)))
	if days > maxRecoveryDays {
		return maxRecoveryDays
	}
	return days
}
