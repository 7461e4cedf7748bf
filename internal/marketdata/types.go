package marketdata

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Market Data Types
// =============================================================================

// Period 조회 기간 프리셋
type Period string

const (
	Period1M Period = "1mo"
	Period3M Period = "3mo"
	Period6M Period = "6mo"
	Period1Y Period = "1y"
	Period2Y Period = "2y"
	Period5Y Period = "5y"
)

// DefaultPeriod 기간 미지정 시 기본값
const DefaultPeriod = Period1Y

// 피드 계층 센티널 오류
// 엔진 오류(잘못된 입력)와 피드 오류(업스트림 장애)를 API에서 구분하기 위한 타입
var (
	// ErrUnknownPeriod 지원하지 않는 기간 문자열
	ErrUnknownPeriod = errors.New("unknown period")
	// ErrSymbolNotFound 피드에 존재하지 않는 심볼
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrFeedUnavailable 업스트림 피드 장애 (상태 코드, 네트워크, 파싱 실패)
	ErrFeedUnavailable = errors.New("feed unavailable")
)

// ParsePeriod 기간 문자열 파싱
// 빈 문자열은 기본 기간으로 처리
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return DefaultPeriod, nil
	}
	switch Period(s) {
	case Period1M, Period3M, Period6M, Period1Y, Period2Y, Period5Y:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Start 기간의 시작일 계산 (now 기준 과거)
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case Period1M:
		return now.AddDate(0, -1, 0)
	case Period3M:
		return now.AddDate(0, -3, 0)
	case Period6M:
		return now.AddDate(0, -6, 0)
	case Period1Y:
		return now.AddDate(-1, 0, 0)
	case Period2Y:
		return now.AddDate(-2, 0, 0)
	case Period5Y:
		return now.AddDate(-5, 0, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}

// Quote 현재가 스냅샷
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	AsOf      time.Time `json:"as_of"`
	FetchedAt time.Time `json:"fetched_at"`
}
