package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/internal/risk"
)

// assessCmd represents the assess command
var assessCmd = &cobra.Command{
	Use:   "assess SYMBOL",
	Short: "종합 리스크 평가",
	Long: `단일 종목의 종합 리스크 프로필을 계산합니다.

VaR/CVaR (95/99%), 일/연 변동성, Sharpe, 최대 낙폭, 베타(벤치마크 지정 시),
리스크 점수(0-100), 한도 위반 알림, 스트레스 테스트 결과를 출력합니다.

Example:
  go run ./cmd/riskd assess AAPL
  go run ./cmd/riskd assess AAPL --period 2y --value 50000 --benchmark SPY
  go run ./cmd/riskd assess AAPL --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

var (
	assessPeriod    string
	assessValue     float64
	assessBenchmark string
	assessJSON      bool
)

func init() {
	rootCmd.AddCommand(assessCmd)
	assessCmd.Flags().StringVar(&assessPeriod, "period", "1y", "조회 기간 (1mo|3mo|6mo|1y|2y|5y)")
	assessCmd.Flags().Float64Var(&assessValue, "value", 10000, "포지션 가치")
	assessCmd.Flags().StringVar(&assessBenchmark, "benchmark", "", "베타 계산용 벤치마크 심볼")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "JSON 출력")
}

func runAssess(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	s, err := buildStack(false)
	if err != nil {
		return err
	}
	defer s.close()

	period, err := marketdata.ParsePeriod(assessPeriod)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	series, err := loadReturns(ctx, s, symbol, period)
	if err != nil {
		return err
	}

	opts := risk.AssessOptions{RiskFreeRate: s.cfg.Risk.RiskFreeRate}
	if assessBenchmark != "" {
		bench, err := loadReturns(ctx, s, assessBenchmark, period)
		if err != nil {
			return fmt.Errorf("benchmark %s: %w", assessBenchmark, err)
		}
		opts.Benchmark = bench
	}

	profile, stress, err := risk.NewAssessor().Assess(*series, assessValue, opts)
	if err != nil {
		return err
	}

	if assessJSON {
		return printJSON(map[string]interface{}{
			"profile":        profile,
			"stress_results": stress,
		})
	}

	printHeader(fmt.Sprintf("Risk Profile - %s (%s, %d observations)", profile.Symbol, period, profile.DataPoints))
	printRow("Position Value", "%s", money(profile.PositionValue))
	printRow("VaR 95% / 99%", "%s / %s", pct(profile.VaR95), pct(profile.VaR99))
	printRow("CVaR 95% / 99%", "%s / %s", pct(profile.CVaR95), pct(profile.CVaR99))
	printRow("Volatility (daily)", "%s", pct(profile.DailyVolatility))
	printRow("Volatility (annual)", "%s", pct(profile.AnnualVolatility))
	printRow("Sharpe Ratio", "%.3f", profile.SharpeRatio)
	printRow("Max Drawdown", "%s", pct(profile.MaxDrawdown))
	if profile.Beta != nil {
		printRow("Beta", "%.3f (vs %s)", *profile.Beta, assessBenchmark)
	}
	printRow("Risk Score", "%.1f / 100", profile.RiskScore)

	if len(profile.Alerts) > 0 {
		fmt.Println("───────────────────────────────────────────────────────────")
		fmt.Printf("  ⚠ %d limit breach(es):\n", len(profile.Alerts))
		for _, a := range profile.Alerts {
			fmt.Printf("    - %s\n", a.Message)
		}
	}

	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Println("  Stress Scenarios")
	for _, r := range stress {
		fmt.Printf("  %-24s %8s  loss %10s  recovery ~%d days\n",
			r.Scenario, pct(r.ShockPct), money(r.LossValue), r.EstimatedRecoveryDays)
	}
	printFooter()

	return nil
}

// loadReturns 심볼의 기간 시세에서 수익률 시계열 구성 (커맨드 공용)
func loadReturns(ctx context.Context, s *stack, symbol string, period marketdata.Period) (*risk.ReturnSeries, error) {
	prices, err := s.market.History(ctx, symbol, period)
	if err != nil {
		return nil, err
	}
	return risk.BuildReturns(symbol, prices, risk.ReturnSimple)
}
