package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/internal/risk"
)

// correlationCmd represents the correlation command
var correlationCmd = &cobra.Command{
	Use:   "correlation SYMBOL SYMBOL [SYMBOL...]",
	Short: "상관관계 행렬",
	Long: `여러 종목 간 Pearson 상관계수 행렬을 계산합니다.

모든 시계열을 공통 거래일 교집합으로 정렬한 뒤 계산하며,
평균 |상관계수| 기반 다변화 평가를 함께 출력합니다.

Example:
  go run ./cmd/riskd correlation AAPL MSFT GOOGL
  go run ./cmd/riskd correlation AAPL SPY --period 2y --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCorrelation,
}

var (
	correlationPeriod string
	correlationJSON   bool
)

func init() {
	rootCmd.AddCommand(correlationCmd)
	correlationCmd.Flags().StringVar(&correlationPeriod, "period", "1y", "조회 기간 (1mo|3mo|6mo|1y|2y|5y)")
	correlationCmd.Flags().BoolVar(&correlationJSON, "json", false, "JSON 출력")
}

func runCorrelation(cmd *cobra.Command, args []string) error {
	s, err := buildStack(false)
	if err != nil {
		return err
	}
	defer s.close()

	period, err := marketdata.ParsePeriod(correlationPeriod)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	series := make(map[string]risk.ReturnSeries, len(args))
	for _, symbol := range args {
		rs, err := loadReturns(ctx, s, symbol, period)
		if err != nil {
			return fmt.Errorf("%s: %w", symbol, err)
		}
		series[rs.Symbol] = *rs
	}

	matrix, err := risk.Correlation(series)
	if err != nil {
		return err
	}

	if correlationJSON {
		return printJSON(matrix)
	}

	printHeader(fmt.Sprintf("Correlation Matrix - %d symbols, %d common days", len(matrix.Symbols), matrix.Overlap))
	fmt.Printf("  %-8s", "")
	for _, sym := range matrix.Symbols {
		fmt.Printf("%10s", sym)
	}
	fmt.Println()
	for i, sym := range matrix.Symbols {
		fmt.Printf("  %-8s", sym)
		for j := range matrix.Symbols {
			fmt.Printf("%10.3f", matrix.Coeffs[i][j])
		}
		fmt.Println()
	}
	fmt.Println("───────────────────────────────────────────────────────────")
	printRow("Mean |correlation|", "%.3f", matrix.MeanAbsCorrelation)
	printRow("Diversification", "%s", matrix.Diversification)
	printFooter()

	return nil
}
