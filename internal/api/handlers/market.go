package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/pkg/logger"
)

// MarketHandler handles market data API endpoints
type MarketHandler struct {
	market *marketdata.Service
	logger *logger.Logger
}

// NewMarketHandler creates a new market data handler
func NewMarketHandler(market *marketdata.Service, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		market: market,
		logger: log,
	}
}

// History returns the daily price history for a symbol
// GET /api/market/history/{symbol}?period=1y
func (h *MarketHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	period, err := marketdata.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	prices, err := h.market.History(r.Context(), symbol, period)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Warn("History lookup failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol": symbol,
		"period": period,
		"count":  len(prices),
		"prices": prices,
	})
}

// Price returns the current quote for a symbol
// GET /api/market/price/{symbol}
func (h *MarketHandler) Price(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	quote, err := h.market.CurrentPrice(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Warn("Quote lookup failed")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// RefreshRequest 시세 갱신 요청
type RefreshRequest struct {
	Symbols []string `json:"symbols"`
	Period  string   `json:"period"`
}

// RefreshResult 심볼별 갱신 결과
type RefreshResult struct {
	Symbol string `json:"symbol"`
	Rows   int    `json:"rows"`
	Error  string `json:"error,omitempty"`
}

// Refresh forces a feed refresh for the given symbols
// POST /api/market/refresh {"symbols": ["AAPL"], "period": "1y"}
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RefreshRequest
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

	// 심볼 단위 부분 실패 허용: 전체가 하나 때문에 실패하지 않음
	results := make([]RefreshResult, 0, len(req.Symbols))
	for _, symbol := range req.Symbols {
		rows, err := h.market.Refresh(ctx, symbol, period)
		result := RefreshResult{Symbol: symbol, Rows: rows}
		if err != nil {
			result.Error = err.Error()
			h.logger.WithError(err).WithField("symbol", symbol).Warn("Refresh failed")
		}
		results = append(results, result)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}
