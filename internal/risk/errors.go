package risk

import "errors"

// 엔진 오류 분류. 모두 호출자가 복구 가능한 조건이며 errors.Is로 매칭한다.
// 엔진은 내부 재시도 없음 (재시도할 I/O가 없음), 프로세스를 중단시키지 않음.
var (
	// ErrInsufficientData 최소 필요 가격/수익률 관측치 부족
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter 신뢰수준/보유기간/경로 수가 허용 범위를 벗어남
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInsufficientOverlap 상관관계 입력 시계열의 공통 날짜 부족
	ErrInsufficientOverlap = errors.New("insufficient overlapping data")

	// ErrUndefinedRatio Sharpe 분모(변동성)가 0
	// NaN을 조용히 반환하는 대신 명시적으로 실패
	ErrUndefinedRatio = errors.New("ratio undefined: zero volatility")
)
