package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/internal/risk"
)

// stressCmd represents the stress command
var stressCmd = &cobra.Command{
	Use:   "stress SYMBOL",
	Short: "스트레스 테스트",
	Long: `역사적 충격 시나리오를 현재 포지션에 적용합니다.

각 시나리오의 손실률/손실 금액과 과거 변동성 기반 복구 기간 추정치를 출력합니다.

Example:
  go run ./cmd/riskd stress AAPL
  go run ./cmd/riskd stress AAPL --value 50000 --period 2y
  go run ./cmd/riskd stress AAPL --json`,
	Args: cobra.ExactArgs(1),
	RunE: runStress,
}

var (
	stressPeriod string
	stressValue  float64
	stressJSON   bool
)

func init() {
	rootCmd.AddCommand(stressCmd)
	stressCmd.Flags().StringVar(&stressPeriod, "period", "1y", "조회 기간 (1mo|3mo|6mo|1y|2y|5y)")
	stressCmd.Flags().Float64Var(&stressValue, "value", 10000, "포지션 가치")
	stressCmd.Flags().BoolVar(&stressJSON, "json", false, "JSON 출력")
}

func runStress(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	s, err := buildStack(false)
	if err != nil {
		return err
	}
	defer s.close()

	period, err := marketdata.ParsePeriod(stressPeriod)
	if err != nil {
		return err
	}

	series, err := loadReturns(cmd.Context(), s, symbol, period)
	if err != nil {
		return err
	}

	dailyVol, _, err := risk.Volatility(series.Returns)
	if err != nil {
		return err
	}

	results := risk.StressTest(stressValue, dailyVol, risk.DefaultScenarios)

	if stressJSON {
		return printJSON(results)
	}

	printHeader(fmt.Sprintf("Stress Test - %s (value %s, daily vol %s)", symbol, money(stressValue), pct(dailyVol)))
	for _, r := range results {
		fmt.Printf("  %-24s %8s  loss %10s  recovery ~%d days\n",
			r.Scenario, pct(r.ShockPct), money(r.LossValue), r.EstimatedRecoveryDays)
	}
	printFooter()

	return nil
}
