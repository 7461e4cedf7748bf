package risk

import (
	"fmt"
	"math/rand"
	"time"
)

// =============================================================================
// Monte Carlo Path Simulator
// =============================================================================

// Simulator Monte Carlo 경로 시뮬레이터
// 명시적으로 주입된 시드 가능한 난수원만 사용 (전역 랜덤 사용 금지)
type Simulator struct {
	config SimulationConfig
	rng    *rand.Rand
}

// NewSimulator 새 시뮬레이터 생성
// Seed=0이면 시각 기반 시드 → 호출마다 결과가 달라짐 (테스트는 반드시 시드 지정)
func NewSimulator(config SimulationConfig) (*Simulator, error) {
	if err := validateSimulationConfig(config); err != nil {
		return nil, err
	}

	// 시각 기반 시드도 결과 재현을 위해 설정에 기록
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}

	return &Simulator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}, nil
}

// validateSimulationConfig 설정 유효성 검사 (fail-closed)
func validateSimulationConfig(config SimulationConfig) error {
	if config.Days < MinHorizonDays || config.Days > MaxHorizonDays {
		return fmt.Errorf("%w: days must be in [%d, %d], got %d",
			ErrInvalidParameter, MinHorizonDays, MaxHorizonDays, config.Days)
	}
	if config.Paths < MinPaths || config.Paths > MaxPaths {
		return fmt.Errorf("%w: paths must be in [%d, %d], got %d",
			ErrInvalidParameter, MinPaths, MaxPaths, config.Paths)
	}
	if config.InitialValue <= 0 {
		return fmt.Errorf("%w: initial value must be positive, got %v",
			ErrInvalidParameter, config.InitialValue)
	}
	if config.Sigma < 0 {
		return fmt.Errorf("%w: sigma must be non-negative, got %v",
			ErrInvalidParameter, config.Sigma)
	}
	if config.Method == MethodBootstrap && len(config.Samples) == 0 {
		return fmt.Errorf("%w: bootstrap method requires historical samples",
			ErrInsufficientData)
	}
	return nil
}

// EstimateParams 과거 수익률에서 (mu, sigma) 추정
func EstimateParams(returns []float64) (mu, sigma float64, err error) {
	if len(returns) < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 returns to estimate parameters, got %d",
			ErrInsufficientData, len(returns))
	}
	return Mean(returns), StdDev(returns), nil
}

// Run 시뮬레이션 실행
// 각 경로는 V_t = V_{t-1} × (1 + ε) 곱셈 스텝을 Days번 수행
// ε는 스텝마다 독립 추출: gaussian이면 N(mu, sigma), bootstrap이면 과거 수익률 재샘플
// 경로끼리 통계적으로 독립. 결과 행렬은 [day][path], day 0 = InitialValue
func (s *Simulator) Run() *SimulationResult {
	days := s.config.Days
	paths := s.config.Paths

	matrix := make([][]float64, days+1)
	matrix[0] = make([]float64, paths)
	for p := 0; p < paths; p++ {
		matrix[0][p] = s.config.InitialValue
	}
	for d := 1; d <= days; d++ {
		matrix[d] = make([]float64, paths)
	}

	// 경로 단위로 순차 생성 (시드 재현성: path-major 순서 고정)
	for p := 0; p < paths; p++ {
		value := s.config.InitialValue
		for d := 1; d <= days; d++ {
			value *= 1 + s.draw()
			matrix[d][p] = value
		}
	}

	band := PercentileBand{
		P5:  make([]float64, days+1),
		P50: make([]float64, days+1),
		P95: make([]float64, days+1),
	}
	for d := 0; d <= days; d++ {
		sorted := sortedCopy(matrix[d])
		band.P5[d] = Percentile(sorted, 5)
		band.P50[d] = Percentile(sorted, 50)
		band.P95[d] = Percentile(sorted, 95)
	}

	final := FinalDistribution{
		P5:  band.P5[days],
		P50: band.P50[days],
		P95: band.P95[days],
	}

	return &SimulationResult{
		Config: s.config,
		Paths:  matrix,
		Band:   band,
		Final:  final,
		RunAt:  time.Now(),
	}
}

// draw 일별 수익률 1개 추출
func (s *Simulator) draw() float64 {
	if s.config.Method == MethodBootstrap {
		return s.config.Samples[s.rng.Intn(len(s.config.Samples))]
	}
	// Gaussian (기본)
	return s.config.Mu + s.config.Sigma*s.rng.NormFloat64()
}

// Simulate 과거 수익률에서 파라미터를 추정해 시뮬레이션까지 한 번에 수행
func Simulate(returns []float64, initialValue float64, days, paths int, seed int64) (*SimulationResult, error) {
	mu, sigma, err := EstimateParams(returns)
	if err != nil {
		return nil, err
	}

	config := SimulationConfig{
		InitialValue: initialValue,
		Days:         days,
		Paths:        paths,
		Mu:           mu,
		Sigma:        sigma,
		Method:       MethodGaussian,
		Seed:         seed,
	}

	sim, err := NewSimulator(config)
	if err != nil {
		return nil, err
	}
	return sim.Run(), nil
}
