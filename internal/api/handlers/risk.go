package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/internal/risk"
	"github.com/quantlab/riskd/pkg/config"
	"github.com/quantlab/riskd/pkg/logger"
)

// defaultPositionValue 포지션 가치 미지정 시 기본값
const defaultPositionValue = 10000

// RiskHandler handles risk assessment API endpoints
// ⭐ SSOT: 리스크 API 핸들러는 이 구조체에서만
type RiskHandler struct {
	market   *marketdata.Service
	assessor *risk.Assessor
	config   *config.Config
	logger   *logger.Logger
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(market *marketdata.Service, assessor *risk.Assessor, cfg *config.Config, log *logger.Logger) *RiskHandler {
	return &RiskHandler{
		market:   market,
		assessor: assessor,
		config:   cfg,
		logger:   log,
	}
}

// AssessResponse 종합 평가 응답
type AssessResponse struct {
	Profile *risk.RiskProfile   `json:"profile"`
	Stress  []risk.StressResult `json:"stress_results"`
}

// Assess returns the full risk profile for a symbol
// GET /api/risk/{symbol}?period=1y&value=10000&benchmark=SPY
func (h *RiskHandler) Assess(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	series, opts, value, err := h.prepare(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	profile, stress, err := h.assessor.Assess(*series, value, *opts)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Warn("Risk assessment failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, AssessResponse{Profile: profile, Stress: stress})
}

// FullAssessment returns profile + stress + Monte Carlo simulation
// GET /api/risk/{symbol}/full?period=1y&value=10000&days=252&paths=500&seed=0
func (h *RiskHandler) FullAssessment(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	series, opts, value, err := h.prepare(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	days, paths, seed, err := simulationParams(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	assessment, err := h.assessor.FullAssessment(*series, value, *opts, days, paths, seed)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Warn("Full assessment failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, assessment)
}

// Simulate runs a Monte Carlo simulation for a symbol
// GET /api/simulate/{symbol}?period=1y&value=10000&days=252&paths=500&seed=0
func (h *RiskHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	series, err := h.loadSeries(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	value, err := queryFloat(r, "value", defaultPositionValue)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	days, paths, seed, err := simulationParams(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if days == 0 {
		days = h.config.Risk.SimulationDays
	}
	if paths == 0 {
		paths = h.config.Risk.SimulationPaths
	}

	result, err := risk.Simulate(series.Returns, value, days, paths, seed)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Warn("Simulation failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Stress applies the scenario table to a position
// GET /api/stress/{symbol}?period=1y&value=10000
func (h *RiskHandler) Stress(w http.ResponseWriter, r *http.Request) {
	series, err := h.loadSeries(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	value, err := queryFloat(r, "value", defaultPositionValue)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	dailyVol, _, err := risk.Volatility(series.Returns)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	results := risk.StressTest(value, dailyVol, h.assessor.Scenarios())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":         series.Symbol,
		"position_value": value,
		"stress_results": results,
	})
}

// CorrelationRequest 상관관계 요청
type CorrelationRequest struct {
	Symbols []string `json:"symbols"`
	Period  string   `json:"period"`
}

// Correlation computes the correlation matrix for a symbol set
// POST /api/correlation {"symbols": ["AAPL","GOOGL"], "period": "1y"}
func (h *RiskHandler) Correlation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CorrelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		respondError(w, http.StatusBadRequest, "symbols is required")
		return
	}

	period, err := marketdata.ParsePeriod(req.Period)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	series := make(map[string]risk.ReturnSeries, len(req.Symbols))
	for _, symbol := range req.Symbols {
		prices, err := h.market.History(ctx, symbol, period)
		if err != nil {
			respondDomainError(w, fmt.Errorf("%s: %w", symbol, err))
			return
		}
		s, err := risk.BuildReturns(symbol, prices, risk.ReturnSimple)
		if err != nil {
			respondDomainError(w, fmt.Errorf("%s: %w", symbol, err))
			return
		}
		series[symbol] = *s
	}

	matrix, err := risk.Correlation(series)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, matrix)
}

// loadSeries 경로의 심볼과 기간 파라미터로 수익률 시계열 구성
func (h *RiskHandler) loadSeries(r *http.Request) (*risk.ReturnSeries, error) {
	symbol := mux.Vars(r)["symbol"]

	period, err := marketdata.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		return nil, err
	}

	prices, err := h.market.History(r.Context(), symbol, period)
	if err != nil {
		return nil, err
	}

	return risk.BuildReturns(symbol, prices, risk.ReturnSimple)
}

// prepare 시계열 + 평가 옵션 + 포지션 가치 구성 (벤치마크 포함)
func (h *RiskHandler) prepare(r *http.Request) (*risk.ReturnSeries, *risk.AssessOptions, float64, error) {
	series, err := h.loadSeries(r)
	if err != nil {
		return nil, nil, 0, err
	}

	value, err := queryFloat(r, "value", defaultPositionValue)
	if err != nil {
		return nil, nil, 0, err
	}

	opts := &risk.AssessOptions{RiskFreeRate: h.config.Risk.RiskFreeRate}

	if benchmark := r.URL.Query().Get("benchmark"); benchmark != "" {
		period, _ := marketdata.ParsePeriod(r.URL.Query().Get("period"))
		prices, err := h.market.History(r.Context(), benchmark, period)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("benchmark %s: %w", benchmark, err)
		}
		bench, err := risk.BuildReturns(benchmark, prices, risk.ReturnSimple)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("benchmark %s: %w", benchmark, err)
		}
		opts.Benchmark = bench
	}

	return series, opts, value, nil
}

// simulationParams days/paths/seed 쿼리 파싱 (0 = 기본값 위임)
func simulationParams(r *http.Request) (days, paths int, seed int64, err error) {
	days, err = queryInt(r, "days", 0)
	if err != nil {
		return 0, 0, 0, err
	}
	paths, err = queryInt(r, "paths", 0)
	if err != nil {
		return 0, 0, 0, err
	}
	seed, err = queryInt64(r, "seed", 0)
	if err != nil {
		return 0, 0, 0, err
	}
	return days, paths, seed, nil
}

func queryInt64(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", risk.ErrInvalidParameter, name, raw)
	}
	return v, nil
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", risk.ErrInvalidParameter, name, raw)
	}
	return v, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", risk.ErrInvalidParameter, name, raw)
	}
	return v, nil
}
