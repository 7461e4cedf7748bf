package risk

import "time"

// =============================================================================
// Return Type & Convention
// =============================================================================

// ReturnType 수익률 계산 방식
type ReturnType string

const (
	ReturnSimple ReturnType = "simple" // (P1 - P0) / P0
	ReturnLog    ReturnType = "log"    // ln(P1 / P0)
)

// LossConvention VaR/CVaR 부호 규약
// ⭐ SSOT: Loss를 양수로 표현 (VaR=0.05 → 5% 손실 가능)
// 전체 시스템에서 이 규약을 일관되게 사용
const LossConvention = "loss_positive"

// TradingDaysPerYear 연환산 기준 거래일수
const TradingDaysPerYear = 252

// =============================================================================
// Input Types
// =============================================================================

// PricePoint 일별 시세 (피드 협력자가 생산, 불변)
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// ReturnSeries 일별 수익률 시계열
// Dates[i]는 Returns[i]가 실현된 거래일 (즉 원본 가격의 i+1번째 날짜)
// 상관관계 계산에서 날짜 교집합 정렬에 사용
type ReturnSeries struct {
	Symbol  string      `json:"symbol"`
	Type    ReturnType  `json:"return_type"`
	Dates   []time.Time `json:"dates"`
	Returns []float64   `json:"returns"`
}

// Len returns the number of return observations
func (s ReturnSeries) Len() int {
	return len(s.Returns)
}

// =============================================================================
// Risk Profile Types
// =============================================================================

// Alert 리스크 한도 위반 알림
type Alert struct {
	Metric    string  `json:"metric"`
	Threshold float64 `json:"threshold"`
	Actual    float64 `json:"actual"`
	Message   string  `json:"message"`
}

// RiskProfile 단일 종목에 대한 종합 리스크 스냅샷 (읽기 전용)
// 엔진은 캐시하지 않음: 항상 입력의 순수 함수
type RiskProfile struct {
	Symbol           string    `json:"symbol"`
	PositionValue    float64   `json:"position_value"`
	DataPoints       int       `json:"data_points"`
	VaR95            float64   `json:"var_95"`  // 손실, 양수
	VaR99            float64   `json:"var_99"`  // 손실, 양수
	CVaR95           float64   `json:"cvar_95"` // 손실, 양수
	CVaR99           float64   `json:"cvar_99"` // 손실, 양수
	DailyVolatility  float64   `json:"daily_volatility"`
	AnnualVolatility float64   `json:"annual_volatility"`
	SharpeRatio      float64   `json:"sharpe_ratio"`
	MaxDrawdown      float64   `json:"max_drawdown"` // peak 대비 하락폭, 양수
	Beta             *float64  `json:"beta,omitempty"`
	RiskScore        float64   `json:"risk_score"` // 0-100
	Alerts           []Alert   `json:"alerts"`
	AssessedAt       time.Time `json:"assessed_at"`
}

// RiskLimits 리스크 한도 설정
type RiskLimits struct {
	MaxVaR95      float64 `json:"max_var_95"`     // 최대 95% VaR
	MaxVaR99      float64 `json:"max_var_99"`     // 최대 99% VaR
	MaxVolatility float64 `json:"max_volatility"` // 최대 연 변동성
	MaxDrawdown   float64 `json:"max_drawdown"`   // 최대 MDD
	MinSharpe     float64 `json:"min_sharpe"`     // 최소 Sharpe
}

// DefaultRiskLimits 기본 리스크 한도
func DefaultRiskLimits() RiskLimits {
	return RiskLimits{
		MaxVaR95:      0.05, // 5% VaR
		MaxVaR99:      0.10, // 10% VaR
		MaxVolatility: 0.30, // 30% 연 변동성
		MaxDrawdown:   0.20, // 20% MDD
		MinSharpe:     1.0,
	}
}

// =============================================================================
// Stress Test Types
// =============================================================================

// Scenario 스트레스 시나리오 (데이터로만 정의, 코드 수정 없이 추가/삭제)
type Scenario struct {
	Name     string  `json:"name"`
	ShockPct float64 `json:"shock_pct"` // 음수 = 하락 충격 (예: -0.38)
}

// StressResult 단일 시나리오 적용 결과
type StressResult struct {
	Scenario              string  `json:"scenario_name"`
	ShockPct              float64 `json:"shock_pct"`
	LossPct               float64 `json:"loss_pct"`
	LossValue             float64 `json:"loss_value"` // 음수 = 손실 금액
	EstimatedRecoveryDays int     `json:"estimated_recovery_days"`
}

// =============================================================================
// Monte Carlo Types
// =============================================================================

// SimulationMethod 시뮬레이션 추출 방법
type SimulationMethod string

const (
	// MethodGaussian 정규분포 N(mu, sigma)에서 일별 수익률 추출 (기본)
	MethodGaussian SimulationMethod = "gaussian"
	// MethodBootstrap 과거 수익률 재샘플링 (분포 가정 없음)
	MethodBootstrap SimulationMethod = "bootstrap"
)

// 시뮬레이션 파라미터 허용 범위
const (
	MinHorizonDays = 21
	MaxHorizonDays = 504
	MinPaths       = 100
	MaxPaths       = 1000
)

// SimulationConfig Monte Carlo 시뮬레이션 설정
// ⭐ SSOT: 재현성을 위해 모든 설정을 명시적으로 기록
type SimulationConfig struct {
	InitialValue float64          `json:"initial_value"`
	Days         int              `json:"days"`  // 보유 기간 [21, 504]
	Paths        int              `json:"paths"` // 경로 수 [100, 1000]
	Mu           float64          `json:"mu"`    // 일 평균 수익률
	Sigma        float64          `json:"sigma"` // 일 변동성
	Method       SimulationMethod `json:"method"`
	Samples      []float64        `json:"-"`    // bootstrap용 과거 수익률
	Seed         int64            `json:"seed"` // 0 = 시각 기반 시드 (비재현)
}

// DefaultSimulationConfig 기본 시뮬레이션 설정
func DefaultSimulationConfig(initialValue, mu, sigma float64) SimulationConfig {
	return SimulationConfig{
		InitialValue: initialValue,
		Days:         TradingDaysPerYear,
		Paths:        500,
		Mu:           mu,
		Sigma:        sigma,
		Method:       MethodGaussian,
		Seed:         0,
	}
}

// PercentileBand 일자별 5/50/95 백분위 밴드 (90% 신뢰 밴드)
// 각 슬라이스의 길이는 Days+1 (index 0 = 시작가치)
type PercentileBand struct {
	P5  []float64 `json:"p5"`
	P50 []float64 `json:"p50"`
	P95 []float64 `json:"p95"`
}

// FinalDistribution 만기 가치 분포 요약
type FinalDistribution struct {
	P5  float64 `json:"p5"`  // worst case
	P50 float64 `json:"p50"` // median
	P95 float64 `json:"p95"` // best case
}

// SimulationResult Monte Carlo 시뮬레이션 결과 (요청마다 새로 생성, 비영속)
type SimulationResult struct {
	Config SimulationConfig  `json:"config"` // 재현성용 설정 기록
	Paths  [][]float64       `json:"paths"`  // [day][path], day 0 = InitialValue
	Band   PercentileBand    `json:"percentile_band"`
	Final  FinalDistribution `json:"final_value_distribution"`
	RunAt  time.Time         `json:"run_at"`
}

// =============================================================================
// Correlation Types
// =============================================================================

// CorrelationMatrix 대칭 상관계수 행렬 (대각선 = 1.0)
type CorrelationMatrix struct {
	Symbols            []string    `json:"symbols"` // 정렬된 순서, Coeffs 인덱스와 대응
	Coeffs             [][]float64 `json:"coefficients"`
	Overlap            int         `json:"overlap"` // 정렬 후 공통 관측치 수
	MeanAbsCorrelation float64     `json:"mean_abs_correlation"`
	Diversification    string      `json:"diversification"`
}
