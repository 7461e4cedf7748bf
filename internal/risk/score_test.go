package risk

import (
	"math"
	"testing"
)

func TestRiskScoreBounds(t *testing.T) {
	limits := DefaultRiskLimits()

	tests := []struct {
		name string
		in   scoreInput
	}{
		{"calm market", scoreInput{VaR95: 0.01, VaR99: 0.02, AnnualVolatility: 0.10, MaxDrawdown: 0.05, Sharpe: 2.0}},
		{"everything breached", scoreInput{VaR95: 0.50, VaR99: 0.60, AnnualVolatility: 1.5, MaxDrawdown: 0.9, Sharpe: -3.0}},
		{"zero metrics", scoreInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := RiskScore(tt.in, limits)
			if score < 0 || score > 100 {
				t.Errorf("score = %v, must be in [0, 100]", score)
			}
		})
	}
}

func TestRiskScoreSaturatesAt100(t *testing.T) {
	limits := DefaultRiskLimits()
	score, _ := RiskScore(scoreInput{
		VaR95:            10 * limits.MaxVaR95,
		VaR99:            10 * limits.MaxVaR99,
		AnnualVolatility: 10 * limits.MaxVolatility,
		MaxDrawdown:      10 * limits.MaxDrawdown,
		Sharpe:           -10,
	}, limits)

	if score != 100 {
		t.Errorf("score = %v, want exactly 100 when every metric saturates", score)
	}
}

func TestRiskScoreMonotoneInVolatility(t *testing.T) {
	// 변동성만 올렸을 때 점수는 감소하지 않아야 한다
	limits := DefaultRiskLimits()
	base := scoreInput{VaR95: 0.02, VaR99: 0.04, MaxDrawdown: 0.08, Sharpe: 1.5}

	prev := -1.0
	for _, vol := range []float64{0.05, 0.15, 0.25, 0.35, 0.50} {
		in := base
		in.AnnualVolatility = vol
		score, _ := RiskScore(in, limits)
		if score < prev {
			t.Errorf("score decreased from %v to %v when volatility rose to %v", prev, score, vol)
		}
		prev = score
	}
}

func TestRiskScoreAlertsOnlyOnBreach(t *testing.T) {
	limits := DefaultRiskLimits()

	// 모든 지표가 한도 이내 → 알림 없음
	_, alerts := RiskScore(scoreInput{
		VaR95:            limits.MaxVaR95 * 0.5,
		VaR99:            limits.MaxVaR99 * 0.5,
		AnnualVolatility: limits.MaxVolatility * 0.5,
		MaxDrawdown:      limits.MaxDrawdown * 0.5,
		Sharpe:           limits.MinSharpe + 1,
	}, limits)
	if len(alerts) != 0 {
		t.Errorf("expected no alerts within limits, got %d: %+v", len(alerts), alerts)
	}

	// VaR95만 위반 → 해당 지표 알림 하나
	_, alerts = RiskScore(scoreInput{
		VaR95:            limits.MaxVaR95 * 1.2,
		VaR99:            limits.MaxVaR99 * 0.5,
		AnnualVolatility: limits.MaxVolatility * 0.5,
		MaxDrawdown:      limits.MaxDrawdown * 0.5,
		Sharpe:           limits.MinSharpe + 1,
	}, limits)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].Metric != "var_95" {
		t.Errorf("alert metric = %q, want var_95", alerts[0].Metric)
	}
	if alerts[0].Threshold != limits.MaxVaR95 {
		t.Errorf("alert threshold = %v, want %v", alerts[0].Threshold, limits.MaxVaR95)
	}
}

func TestRiskScoreSharpeBelowMinimum(t *testing.T) {
	limits := DefaultRiskLimits()

	_, alerts := RiskScore(scoreInput{
		VaR95:            0.01,
		VaR99:            0.02,
		AnnualVolatility: 0.10,
		MaxDrawdown:      0.05,
		Sharpe:           0.3, // 최소 1.0 미달
	}, limits)

	found := false
	for _, a := range alerts {
		if a.Metric == "sharpe_ratio" {
			found = true
			if a.Actual != 0.3 {
				t.Errorf("alert actual = %v, want 0.3", a.Actual)
			}
		}
	}
	if !found {
		t.Error("expected sharpe_ratio alert when below minimum")
	}
}

func TestRiskScoreKnownContribution(t *testing.T) {
	// 변동성만 한도의 절반, 나머지는 0/우수 → 점수 = 25 × 0.5 = 12.5
	limits := DefaultRiskLimits()
	score, _ := RiskScore(scoreInput{
		AnnualVolatility: limits.MaxVolatility * 0.5,
		Sharpe:           limits.MinSharpe * 2,
	}, limits)

	if math.Abs(score-12.5) > 1e-9 {
		t.Errorf("score = %v, want 12.5", score)
	}
}
