package risk

import "fmt"

// =============================================================================
// Composite Risk Score (0-100)
// =============================================================================

// 지표별 가중치 (합계 100)
// 각 지표는 한도 대비 위반 비율을 [0, 1]로 절단한 뒤 가중치를 곱해 기여
// 지표가 나빠지면 점수는 단조 증가, 상한 100
const (
	weightVaR95      = 25.0
	weightVaR99      = 10.0
	weightVolatility = 25.0
	weightDrawdown   = 25.0
	weightSharpe     = 15.0
)

// scoreInput 점수 계산에 필요한 지표 묶음
type scoreInput struct {
	VaR95            float64
	VaR99            float64
	AnnualVolatility float64
	MaxDrawdown      float64
	Sharpe           float64
}

// RiskScore 한도 테이블 대비 종합 리스크 점수와 위반 알림 계산
// 한도를 넘은 지표마다 Alert 생성; 점수 기여는 한도 이하에서도 비례 반영
func RiskScore(in scoreInput, limits RiskLimits) (float64, []Alert) {
	alerts := make([]Alert, 0)

	score := 0.0

	// 손실형 지표: actual/limit 비율 (1에서 절단)
	score += weightVaR95 * clamp01(in.VaR95/limits.MaxVaR95)
	score += weightVaR99 * clamp01(in.VaR99/limits.MaxVaR99)
	score += weightVolatility * clamp01(in.AnnualVolatility/limits.MaxVolatility)
	score += weightDrawdown * clamp01(in.MaxDrawdown/limits.MaxDrawdown)

	// Sharpe: 최소 기준 미달 정도 (음수 Sharpe는 전액 기여)
	score += weightSharpe * clamp01((limits.MinSharpe-in.Sharpe)/limits.MinSharpe)

	if in.VaR95 > limits.MaxVaR95 {
		alerts = append(alerts, newAlert("var_95", limits.MaxVaR95, in.VaR95))
	}
	if in.VaR99 > limits.MaxVaR99 {
		alerts = append(alerts, newAlert("var_99", limits.MaxVaR99, in.VaR99))
	}
	if in.AnnualVolatility > limits.MaxVolatility {
		alerts = append(alerts, newAlert("annual_volatility", limits.MaxVolatility, in.AnnualVolatility))
	}
	if in.MaxDrawdown > limits.MaxDrawdown {
		alerts = append(alerts, newAlert("max_drawdown", limits.MaxDrawdown, in.MaxDrawdown))
	}
	if in.Sharpe < limits.MinSharpe {
		alerts = append(alerts, Alert{
			Metric:    "sharpe_ratio",
			Threshold: limits.MinSharpe,
			Actual:    in.Sharpe,
			Message:   fmt.Sprintf("sharpe_ratio %.2f below minimum %.2f", in.Sharpe, limits.MinSharpe),
		})
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return score, alerts
}

func newAlert(metric string, threshold, actual float64) Alert {
	return Alert{
		Metric:    metric,
		Threshold: threshold,
		Actual:    actual,
		Message:   fmt.Sprintf("%s %.4f exceeds limit %.4f", metric, actual, threshold),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
