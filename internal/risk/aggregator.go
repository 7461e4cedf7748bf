package risk

import (
	"errors"
	"time"
)

// =============================================================================
// Risk Aggregator (종합 평가 진입점)
// =============================================================================

// Assessor 종합 리스크 평가 오케스트레이터
// "전체 평가가 무엇으로 구성되는가"를 아는 유일한 컴포넌트
// 자체 계산 없음: 하위 순수 함수들의 조합과 한도 비교만 수행
type Assessor struct {
	limits    RiskLimits
	scenarios []Scenario
}

// NewAssessor 기본 한도/시나리오로 평가기 생성
func NewAssessor() *Assessor {
	return &Assessor{
		limits:    DefaultRiskLimits(),
		scenarios: DefaultScenarios,
	}
}

// WithLimits 한도 교체
func (a *Assessor) WithLimits(limits RiskLimits) *Assessor {
	a.limits = limits
	return a
}

// WithScenarios 시나리오 테이블 교체
func (a *Assessor) WithScenarios(scenarios []Scenario) *Assessor {
	a.scenarios = scenarios
	return a
}

// Limits returns the active risk limits
func (a *Assessor) Limits() RiskLimits {
	return a.limits
}

// Scenarios returns the active scenario table
func (a *Assessor) Scenarios() []Scenario {
	return a.scenarios
}

// AssessOptions 평가 옵션
type AssessOptions struct {
	// RiskFreeRate 연 무위험 수익률 (Sharpe용, 기본 0)
	RiskFreeRate float64
	// Benchmark 베타 계산용 벤치마크 수익률 (nil이면 베타 생략)
	Benchmark *ReturnSeries
}

// Assess 단일 종목 종합 리스크 평가
// 분포 지표 전체 + 스트레스 테스트 + 한도 알림을 하나의 스냅샷으로 생성
// 수익률 분산이 0인 퇴화 시계열은 ErrUndefinedRatio로 실패 (부분 결과 대체 없음)
func (a *Assessor) Assess(series ReturnSeries, positionValue float64, opts AssessOptions) (*RiskProfile, []StressResult, error) {
	returns := series.Returns

	var95, err := VaR(returns, 0.95)
	if err != nil {
		return nil, nil, err
	}
	var99, err := VaR(returns, 0.99)
	if err != nil {
		return nil, nil, err
	}
	cvar95, err := CVaR(returns, 0.95)
	if err != nil {
		return nil, nil, err
	}
	cvar99, err := CVaR(returns, 0.99)
	if err != nil {
		return nil, nil, err
	}

	dailyVol, annualVol, err := Volatility(returns)
	if err != nil {
		return nil, nil, err
	}

	sharpe, err := SharpeRatio(returns, opts.RiskFreeRate)
	if err != nil {
		return nil, nil, err
	}

	maxDD, _, err := MaxDrawdown(returns)
	if err != nil {
		return nil, nil, err
	}

	profile := &RiskProfile{
		Symbol:           series.Symbol,
		PositionValue:    positionValue,
		DataPoints:       series.Len(),
		VaR95:            var95,
		VaR99:            var99,
		CVaR95:           cvar95,
		CVaR99:           cvar99,
		DailyVolatility:  dailyVol,
		AnnualVolatility: annualVol,
		SharpeRatio:      sharpe,
		MaxDrawdown:      maxDD,
		AssessedAt:       time.Now(),
	}

	// 베타는 벤치마크가 주어진 경우에만; 겹침 부족은 평가 전체를 막지 않음
	if opts.Benchmark != nil {
		beta, err := Beta(series, *opts.Benchmark)
		if err == nil {
			profile.Beta = &beta
		} else if !errors.Is(err, ErrInsufficientOverlap) {
			return nil, nil, err
		}
	}

	score, alerts := RiskScore(scoreInput{
		VaR95:            var95,
		VaR99:            var99,
		AnnualVolatility: annualVol,
		MaxDrawdown:      maxDD,
		Sharpe:           sharpe,
	}, a.limits)
	profile.RiskScore = score
	profile.Alerts = alerts

	stress := StressTest(positionValue, dailyVol, a.scenarios)

	return profile, stress, nil
}

// Assessment 전체 평가 결과 (프로필 + 스트레스 + 시뮬레이션)
type Assessment struct {
	Profile    *RiskProfile       `json:"profile"`
	Stress     []StressResult     `json:"stress_results"`
	Simulation *SimulationResult  `json:"simulation"`
}

// FullAssessment 기본 시뮬레이션 설정까지 포함한 전체 평가
// days/paths가 0이면 기본값 (252일, 500경로)
func (a *Assessor) FullAssessment(series ReturnSeries, positionValue float64, opts AssessOptions, days, paths int, seed int64) (*Assessment, error) {
	profile, stress, err := a.Assess(series, positionValue, opts)
	if err != nil {
		return nil, err
	}

	if days == 0 {
		days = TradingDaysPerYear
	}
	if paths == 0 {
		paths = 500
	}

	sim, err := Simulate(series.Returns, positionValue, days, paths, seed)
	if err != nil {
		return nil, err
	}

	return &Assessment{
		Profile:    profile,
		Stress:     stress,
		Simulation: sim,
	}, nil
}
