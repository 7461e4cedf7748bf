package marketdata

import (
	"errors"
	"testing"
	"time"
)

func assertFeedErrIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("error = %v, want errors.Is(%v)", err, target)
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"", DefaultPeriod, false},
		{"1mo", Period1M, false},
		{"3mo", Period3M, false},
		{"6mo", Period6M, false},
		{"1y", Period1Y, false},
		{"2y", Period2Y, false},
		{"5y", Period5Y, false},
		{"10y", "", true},
		{"1d", "", true},
		{"1Y", "", true}, // 대소문자 구분
	}

	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePeriod(%q): expected error", tt.in)
			} else {
				assertFeedErrIs(t, err, ErrUnknownPeriod)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePeriod(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period Period
		want   time.Time
	}{
		{Period1M, time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)},
		{Period6M, time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)},
		{Period1Y, time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)},
		{Period5Y, time.Date(2021, 8, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := tt.period.Start(now); !got.Equal(tt.want) {
			t.Errorf("%s.Start = %v, want %v", tt.period, got, tt.want)
		}
	}
}
