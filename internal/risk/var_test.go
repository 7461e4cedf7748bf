package risk

import (
	"math"
	"math/rand"
	"testing"
)

// 스펙 검증용 고정 시계열
var fixtureReturns = []float64{0.01, -0.02, 0.015, -0.03, 0.005}

func TestVaRFixture(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       float64
	}{
		// 정렬: [-0.03, -0.02, 0.005, 0.01, 0.015]
		// 5% 분위 = -0.03×0.8 + -0.02×0.2 = -0.028 (선형 보간)
		{"95% confidence", 0.95, 0.028},
		// 1% 분위 = -0.03×0.96 + -0.02×0.04 = -0.0296
		{"99% confidence", 0.99, 0.0296},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VaR(fixtureReturns, tt.confidence)
			if err != nil {
				t.Fatalf("VaR failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("VaR = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVaRLossPositiveConvention(t *testing.T) {
	// 전부 양의 수익률 → 최악 수익률도 이익 → VaR는 0으로 절단되지 않고
	// 손실-양수 규약에 따라 음이 아닌 값만 보장
	gains := []float64{0.01, 0.02, 0.03, 0.04, 0.05}
	got, err := VaR(gains, 0.95)
	if err != nil {
		t.Fatalf("VaR failed: %v", err)
	}
	if got < 0 {
		t.Errorf("VaR = %v, must be non-negative (loss-positive convention)", got)
	}
}

func TestVaROrdering(t *testing.T) {
	// VaR99 >= VaR95 >= 0 (모든 시계열에서 성립해야 하는 순서 성질)
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		returns := make([]float64, 250)
		for i := range returns {
			returns[i] = 0.0005 + 0.02*rng.NormFloat64()
		}

		var95, err := VaR(returns, 0.95)
		if err != nil {
			t.Fatalf("VaR(0.95) failed: %v", err)
		}
		var99, err := VaR(returns, 0.99)
		if err != nil {
			t.Fatalf("VaR(0.99) failed: %v", err)
		}

		if var95 < 0 {
			t.Errorf("trial %d: VaR95 = %v < 0", trial, var95)
		}
		if var99 < var95 {
			t.Errorf("trial %d: VaR99 = %v < VaR95 = %v", trial, var99, var95)
		}
	}
}

func TestVaRInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		returns    []float64
		confidence float64
		wantErr    error
	}{
		{"empty returns", nil, 0.95, ErrInsufficientData},
		{"confidence zero", fixtureReturns, 0, ErrInvalidParameter},
		{"confidence one", fixtureReturns, 1, ErrInvalidParameter},
		{"confidence negative", fixtureReturns, -0.5, ErrInvalidParameter},
		{"confidence above one", fixtureReturns, 1.5, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VaR(tt.returns, tt.confidence)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			assertErrIs(t, err, tt.wantErr)
		})
	}
}

func TestCVaRFixture(t *testing.T) {
	got, err := CVaR(fixtureReturns, 0.95)
	if err != nil {
		t.Fatalf("CVaR failed: %v", err)
	}
	// 꼬리는 {-0.03} 하나 → CVaR = 0.03
	if math.Abs(got-0.03) > 1e-12 {
		t.Errorf("CVaR95 = %v, want 0.03", got)
	}
}

func TestCVaRDominatesVaR(t *testing.T) {
	// CVaR >= VaR (꼬리 평균은 꼬리 경계보다 나쁘거나 같다)
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		returns := make([]float64, 500)
		for i := range returns {
			returns[i] = 0.03 * rng.NormFloat64()
		}

		v, err := VaR(returns, 0.95)
		if err != nil {
			t.Fatalf("VaR failed: %v", err)
		}
		cv, err := CVaR(returns, 0.95)
		if err != nil {
			t.Fatalf("CVaR failed: %v", err)
		}

		if cv < v-1e-12 {
			t.Errorf("trial %d: CVaR = %v < VaR = %v", trial, cv, v)
		}
	}
}

func TestCVaREmptyTailFallsBackToVaR(t *testing.T) {
	// 모든 수익률이 동일하면 -VaR보다 작거나 같은 관측치가 전체가 되거나,
	// 경계 동률 처리에 따라 꼬리가 비면 CVaR = VaR
	flat := []float64{0.01, 0.01, 0.01, 0.01, 0.01}

	v, err := VaR(flat, 0.95)
	if err != nil {
		t.Fatalf("VaR failed: %v", err)
	}
	cv, err := CVaR(flat, 0.95)
	if err != nil {
		t.Fatalf("CVaR failed: %v", err)
	}
	if cv < v {
		t.Errorf("CVaR = %v < VaR = %v", cv, v)
	}
}

func TestParametricVaR(t *testing.T) {
	// mu=0, sigma=0.02, 95% → VaR ≈ 1.6449 × 0.02
	v, cv, err := ParametricVaR(0, 0.02, 0.95)
	if err != nil {
		t.Fatalf("ParametricVaR failed: %v", err)
	}

	wantVaR := 1.6449 * 0.02
	if math.Abs(v-wantVaR) > 1e-4 {
		t.Errorf("parametric VaR = %v, want ≈ %v", v, wantVaR)
	}
	if cv < v {
		t.Errorf("parametric CVaR = %v < VaR = %v", cv, v)
	}

	_, _, err = ParametricVaR(0, 0.02, 1.5)
	assertErrIs(t, err, ErrInvalidParameter)
}
