package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/internal/risk"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondDomainError 도메인 오류를 HTTP 상태 코드로 변환
// 잘못된 요청(400) / 데이터로 계산 불가(422) / 피드 장애(502)를 구분:
// 호출자가 "내 잘못"과 "업스트림 잘못"을 응답 코드만으로 판별 가능
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, risk.ErrInvalidParameter),
		errors.Is(err, marketdata.ErrUnknownPeriod):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, risk.ErrInsufficientData),
		errors.Is(err, risk.ErrInsufficientOverlap),
		errors.Is(err, risk.ErrUndefinedRatio):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, marketdata.ErrSymbolNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, marketdata.ErrFeedUnavailable):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
