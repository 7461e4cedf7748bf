package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantlab/riskd/internal/marketdata"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [SYMBOL...]",
	Short: "시세 수집 및 저장",
	Long: `피드에서 시세를 새로 받아 캐시를 갱신하고 DB에 저장합니다.

심볼을 지정하지 않으면 WATCHLIST 환경변수의 종목을 전부 수집합니다.
DATABASE_URL 미설정 시 캐시 갱신만 수행합니다.

Example:
  go run ./cmd/riskd fetch
  go run ./cmd/riskd fetch AAPL MSFT --period 5y`,
	RunE: runFetch,
}

var fetchPeriod string

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&fetchPeriod, "period", "1y", "조회 기간 (1mo|3mo|6mo|1y|2y|5y)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	s, err := buildStack(true)
	if err != nil {
		return err
	}
	defer s.close()

	period, err := marketdata.ParsePeriod(fetchPeriod)
	if err != nil {
		return err
	}

	symbols := args
	if len(symbols) == 0 {
		symbols = s.cfg.Risk.Watchlist
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols given and WATCHLIST is empty")
	}

	printHeader(fmt.Sprintf("Fetch - %d symbols (%s)", len(symbols), period))

	ctx := cmd.Context()
	var failed int
	for _, symbol := range symbols {
		count, err := s.market.Refresh(ctx, symbol, period)
		if err != nil {
			failed++
			fmt.Printf("  %-8s ✗ %v\n", symbol, err)
			continue
		}
		fmt.Printf("  %-8s ✓ %d rows\n", symbol, count)
	}
	printFooter()

	if failed > 0 {
		return fmt.Errorf("fetch failed for %d/%d symbols", failed, len(symbols))
	}
	return nil
}
