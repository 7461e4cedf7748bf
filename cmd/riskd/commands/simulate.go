package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/internal/risk"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate SYMBOL",
	Short: "Monte Carlo 시뮬레이션",
	Long: `과거 수익률에서 추정한 (mu, sigma)로 미래 가치 경로를 시뮬레이션합니다.

보유 기간은 21~504 거래일, 경로 수는 100~1000.
같은 --seed를 주면 결과가 완전히 재현됩니다.

Example:
  go run ./cmd/riskd simulate AAPL
  go run ./cmd/riskd simulate AAPL --days 63 --paths 1000 --seed 42
  go run ./cmd/riskd simulate AAPL --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

var (
	simulatePeriod string
	simulateValue  float64
	simulateDays   int
	simulatePaths  int
	simulateSeed   int64
	simulateJSON   bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringVar(&simulatePeriod, "period", "1y", "조회 기간 (1mo|3mo|6mo|1y|2y|5y)")
	simulateCmd.Flags().Float64Var(&simulateValue, "value", 10000, "시작 포지션 가치")
	simulateCmd.Flags().IntVar(&simulateDays, "days", 0, "보유 기간 (거래일, 기본: SIMULATION_DAYS)")
	simulateCmd.Flags().IntVar(&simulatePaths, "paths", 0, "경로 수 (기본: SIMULATION_PATHS)")
	simulateCmd.Flags().Int64Var(&simulateSeed, "seed", 0, "난수 시드 (0 = 시각 기반)")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "JSON 출력")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	symbol := args[0]

	s, err := buildStack(false)
	if err != nil {
		return err
	}
	defer s.close()

	period, err := marketdata.ParsePeriod(simulatePeriod)
	if err != nil {
		return err
	}

	series, err := loadReturns(cmd.Context(), s, symbol, period)
	if err != nil {
		return err
	}

	days := simulateDays
	if days == 0 {
		days = s.cfg.Risk.SimulationDays
	}
	paths := simulatePaths
	if paths == 0 {
		paths = s.cfg.Risk.SimulationPaths
	}

	result, err := risk.Simulate(series.Returns, simulateValue, days, paths, simulateSeed)
	if err != nil {
		return err
	}

	if simulateJSON {
		return printJSON(result)
	}

	printHeader(fmt.Sprintf("Monte Carlo - %s (%d days x %d paths)", symbol, days, paths))
	printRow("Initial Value", "%s", money(result.Config.InitialValue))
	printRow("Estimated mu / sigma", "%.5f / %.5f (daily)", result.Config.Mu, result.Config.Sigma)
	printRow("Seed", "%d", result.Config.Seed)
	fmt.Println("───────────────────────────────────────────────────────────")
	printRow("Final P5  (worst)", "%s", money(result.Final.P5))
	printRow("Final P50 (median)", "%s", money(result.Final.P50))
	printRow("Final P95 (best)", "%s", money(result.Final.P95))
	printFooter()

	return nil
}
