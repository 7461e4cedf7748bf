package risk

import (
	"math"
	"testing"
)

func TestStressTestFixture(t *testing.T) {
	results := StressTest(10000, 0.015, DefaultScenarios)

	// 결과 수 = 시나리오 수, 기본 테이블은 8개 이상
	if len(results) != len(DefaultScenarios) {
		t.Fatalf("got %d results for %d scenarios", len(results), len(DefaultScenarios))
	}
	if len(DefaultScenarios) < 8 {
		t.Fatalf("default scenario table has %d entries, want >= 8", len(DefaultScenarios))
	}

	for i, r := range results {
		sc := DefaultScenarios[i]
		// loss_value = value × shock, 정확히
		want := 10000 * sc.ShockPct
		if r.LossValue != want {
			t.Errorf("%s: loss value = %v, want %v", r.Scenario, r.LossValue, want)
		}
		if r.LossPct != sc.ShockPct {
			t.Errorf("%s: loss pct = %v, want %v", r.Scenario, r.LossPct, sc.ShockPct)
		}
		if r.EstimatedRecoveryDays < 0 {
			t.Errorf("%s: recovery days = %d, must be non-negative", r.Scenario, r.EstimatedRecoveryDays)
		}
	}
}

func TestStressTestWorstCase(t *testing.T) {
	// 2008 금융위기 −38% 충격: 10000 → −3800
	results := StressTest(10000, 0.015, []Scenario{{Name: "2008 Financial Crisis", ShockPct: -0.38}})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].LossValue != -3800 {
		t.Errorf("loss value = %v, want -3800", results[0].LossValue)
	}
}

func TestStressTestEmptyTable(t *testing.T) {
	results := StressTest(10000, 0.015, nil)
	if len(results) != 0 {
		t.Errorf("got %d results for empty table, want 0", len(results))
	}
	if results == nil {
		t.Error("results must be an empty slice, not nil")
	}
}

func TestEstimateRecoveryDays(t *testing.T) {
	// |shock| / (0.1 × dailyVol), 올림
	got := estimateRecoveryDays(-0.10, 0.02)
	want := int(math.Ceil(0.10 / (0.1 * 0.02))) // 50
	if got != want {
		t.Errorf("recovery days = %d, want %d", got, want)
	}
}

func TestEstimateRecoveryDaysMonotone(t *testing.T) {
	// 충격이 클수록 길고, 변동성이 높을수록 짧다
	vol := 0.015
	prev := 0
	for _, shock := range []float64{-0.05, -0.10, -0.20, -0.38} {
		d := estimateRecoveryDays(shock, vol)
		if d < prev {
			t.Errorf("recovery days decreased (%d -> %d) for larger shock %v", prev, d, shock)
		}
		prev = d
	}

	lowVol := estimateRecoveryDays(-0.20, 0.005)
	highVol := estimateRecoveryDays(-0.20, 0.03)
	if lowVol < highVol {
		t.Errorf("low-vol recovery %d shorter than high-vol %d", lowVol, highVol)
	}
}

func TestEstimateRecoveryDaysEdgeCases(t *testing.T) {
	if got := estimateRecoveryDays(0, 0.02); got != 0 {
		t.Errorf("zero shock: recovery = %d, want 0", got)
	}
	if got := estimateRecoveryDays(-0.20, 0); got != maxRecoveryDays {
		t.Errorf("zero vol: recovery = %d, want cap %d", got, maxRecoveryDays)
	}
	// 극단적으로 낮은 변동성 → 상한 절단
	if got := estimateRecoveryDays(-0.38, 1e-9); got != maxRecoveryDays {
		t.Errorf("tiny vol: recovery = %d, want cap %d", got, maxRecoveryDays)
	}
}
