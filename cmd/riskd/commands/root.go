package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "riskd",
	Short: "riskd - 포트폴리오 리스크 지표 엔진",
	Long: `riskd CLI

과거 일별 시세에서 VaR/CVaR, 변동성, Sharpe, 최대 낙폭, 베타,
Monte Carlo 시뮬레이션, 스트레스 테스트, 상관관계 행렬을 계산합니다.

Usage:
  go run ./cmd/riskd [command]

Examples:
  go run ./cmd/riskd api
  go run ./cmd/riskd assess AAPL --period 1y
  go run ./cmd/riskd simulate AAPL --days 252 --paths 500 --seed 42
  go run ./cmd/riskd correlation AAPL MSFT GOOGL`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
