package risk

import (
	"math"
	"testing"
)

func gaussianConfig(seed int64) SimulationConfig {
	return SimulationConfig{
		InitialValue: 10000,
		Days:         21,
		Paths:        200,
		Mu:           0.0005,
		Sigma:        0.01,
		Method:       MethodGaussian,
		Seed:         seed,
	}
}

func TestSimulatorSeedDeterminism(t *testing.T) {
	// 같은 시드 → 비트 단위 동일 결과
	s1, err := NewSimulator(gaussianConfig(42))
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	s2, err := NewSimulator(gaussianConfig(42))
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}

	r1 := s1.Run()
	r2 := s2.Run()

	for d := range r1.Paths {
		for p := range r1.Paths[d] {
			if r1.Paths[d][p] != r2.Paths[d][p] {
				t.Fatalf("paths diverge at day %d path %d: %v vs %v",
					d, p, r1.Paths[d][p], r2.Paths[d][p])
			}
		}
	}

	// 다른 시드 → 다른 결과
	s3, _ := NewSimulator(gaussianConfig(43))
	r3 := s3.Run()
	if r1.Final.P50 == r3.Final.P50 {
		t.Error("different seeds produced identical median outcome")
	}
}

func TestSimulatorRecordsEffectiveSeed(t *testing.T) {
	// Seed=0 → 시각 기반 시드가 선택되고 결과 설정에 기록돼야 재현 가능
	s, err := NewSimulator(gaussianConfig(0))
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	res := s.Run()
	if res.Config.Seed == 0 {
		t.Fatal("effective seed not recorded in result config")
	}

	// 기록된 시드로 재실행하면 동일 결과
	replay, err := NewSimulator(res.Config)
	if err != nil {
		t.Fatalf("NewSimulator replay failed: %v", err)
	}
	if got := replay.Run().Final.P50; got != res.Final.P50 {
		t.Errorf("replay median = %v, want %v", got, res.Final.P50)
	}
}

func TestSimulatorShape(t *testing.T) {
	s, err := NewSimulator(gaussianConfig(1))
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	res := s.Run()

	// 행렬: (days+1) × paths, day 0은 전부 초기 가치
	if len(res.Paths) != 22 {
		t.Fatalf("path matrix has %d rows, want 22", len(res.Paths))
	}
	for p, v := range res.Paths[0] {
		if v != 10000 {
			t.Errorf("Paths[0][%d] = %v, want initial value 10000", p, v)
		}
	}

	// 밴드 길이 = days+1, 밴드 순서 P5 <= P50 <= P95
	if len(res.Band.P50) != 22 {
		t.Fatalf("band length = %d, want 22", len(res.Band.P50))
	}
	for d := 0; d < 22; d++ {
		if res.Band.P5[d] > res.Band.P50[d] || res.Band.P50[d] > res.Band.P95[d] {
			t.Errorf("day %d: band out of order: P5=%v P50=%v P95=%v",
				d, res.Band.P5[d], res.Band.P50[d], res.Band.P95[d])
		}
	}

	// 최종 분포 = 밴드 마지막 날
	if res.Final.P50 != res.Band.P50[21] {
		t.Errorf("Final.P50 = %v, want Band.P50[21] = %v", res.Final.P50, res.Band.P50[21])
	}

	// 가치는 항상 양수 (수익률 > -1 가정 하에)
	for d := range res.Paths {
		for p, v := range res.Paths[d] {
			if v <= 0 || math.IsNaN(v) {
				t.Fatalf("Paths[%d][%d] = %v, must be positive finite", d, p, v)
			}
		}
	}
}

func TestSimulatorMedianConvergence(t *testing.T) {
	// 작은 sigma에서 중앙값은 V0 × (1+mu)^days 근처로 수렴
	config := SimulationConfig{
		InitialValue: 10000,
		Days:         21,
		Paths:        1000,
		Mu:           0.001,
		Sigma:        0.002,
		Method:       MethodGaussian,
		Seed:         99,
	}
	s, err := NewSimulator(config)
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	res := s.Run()

	expected := 10000 * math.Pow(1.001, 21)
	relErr := math.Abs(res.Final.P50-expected) / expected
	if relErr > 0.01 {
		t.Errorf("median = %v, expected ≈ %v (rel err %v)", res.Final.P50, expected, relErr)
	}
}

func TestSimulatorBootstrapConstantSamples(t *testing.T) {
	// 재샘플 풀이 상수 하나면 경로는 결정적: V0 × (1+r)^d
	config := SimulationConfig{
		InitialValue: 10000,
		Days:         21,
		Paths:        100,
		Method:       MethodBootstrap,
		Samples:      []float64{0.01},
		Seed:         5,
	}
	s, err := NewSimulator(config)
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	res := s.Run()

	for d := 0; d <= 21; d++ {
		want := 10000 * math.Pow(1.01, float64(d))
		for p := 0; p < 100; p++ {
			if math.Abs(res.Paths[d][p]-want) > 1e-6 {
				t.Fatalf("Paths[%d][%d] = %v, want %v", d, p, res.Paths[d][p], want)
			}
		}
	}
}

func TestSimulatorConfigValidation(t *testing.T) {
	base := gaussianConfig(1)

	tests := []struct {
		name    string
		mutate  func(*SimulationConfig)
		wantErr error
	}{
		{"days below minimum", func(c *SimulationConfig) { c.Days = 20 }, ErrInvalidParameter},
		{"days above maximum", func(c *SimulationConfig) { c.Days = 505 }, ErrInvalidParameter},
		{"paths below minimum", func(c *SimulationConfig) { c.Paths = 99 }, ErrInvalidParameter},
		{"paths above maximum", func(c *SimulationConfig) { c.Paths = 1001 }, ErrInvalidParameter},
		{"non-positive initial value", func(c *SimulationConfig) { c.InitialValue = 0 }, ErrInvalidParameter},
		{"negative sigma", func(c *SimulationConfig) { c.Sigma = -0.01 }, ErrInvalidParameter},
		{"bootstrap without samples", func(c *SimulationConfig) {
			c.Method = MethodBootstrap
			c.Samples = nil
		}, ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := base
			tt.mutate(&config)
			_, err := NewSimulator(config)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			assertErrIs(t, err, tt.wantErr)
		})
	}
}

func TestSimulatorBoundaryConfigAccepted(t *testing.T) {
	for _, days := range []int{MinHorizonDays, MaxHorizonDays} {
		for _, paths := range []int{MinPaths, MaxPaths} {
			config := gaussianConfig(1)
			config.Days = days
			config.Paths = paths
			if _, err := NewSimulator(config); err != nil {
				t.Errorf("days=%d paths=%d rejected: %v", days, paths, err)
			}
		}
	}
}

func TestEstimateParams(t *testing.T) {
	mu, sigma, err := EstimateParams(fixtureReturns)
	if err != nil {
		t.Fatalf("EstimateParams failed: %v", err)
	}
	if math.Abs(mu-Mean(fixtureReturns)) > 1e-15 {
		t.Errorf("mu = %v, want %v", mu, Mean(fixtureReturns))
	}
	if math.Abs(sigma-StdDev(fixtureReturns)) > 1e-15 {
		t.Errorf("sigma = %v, want %v", sigma, StdDev(fixtureReturns))
	}

	_, _, err = EstimateParams([]float64{0.01})
	assertErrIs(t, err, ErrInsufficientData)
}

func TestSimulateEndToEnd(t *testing.T) {
	res, err := Simulate(fixtureReturns, 10000, 21, 100, 7)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if len(res.Paths) != 22 {
		t.Errorf("path matrix rows = %d, want 22", len(res.Paths))
	}
	if res.Config.Mu != Mean(fixtureReturns) {
		t.Errorf("config mu = %v, want estimated %v", res.Config.Mu, Mean(fixtureReturns))
	}
}
