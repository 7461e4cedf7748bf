package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantlab/riskd/internal/api"
	"github.com/quantlab/riskd/internal/api/handlers"
	"github.com/quantlab/riskd/internal/risk"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                       - Health check
  GET  /api/risk/{symbol}            - 종합 리스크 평가
  GET  /api/risk/{symbol}/full       - 평가 + Monte Carlo
  GET  /api/simulate/{symbol}        - Monte Carlo 시뮬레이션
  GET  /api/stress/{symbol}          - 스트레스 테스트
  POST /api/correlation              - 상관관계 행렬
  GET  /api/market/history/{symbol}  - 시세 이력
  GET  /api/market/price/{symbol}    - 현재가
  POST /api/market/refresh           - 시세 갱신
  GET  /api/stream/quotes            - 실시간 시세 (websocket)

Example:
  go run ./cmd/riskd api
  go run ./cmd/riskd api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== riskd API Server ===")

	s, err := buildStack(true)
	if err != nil {
		return err
	}
	defer s.close()

	if apiPort != "" {
		s.cfg.Port = apiPort
	}

	assessor := risk.NewAssessor()

	riskHandler := handlers.NewRiskHandler(s.market, assessor, s.cfg, s.log)
	marketHandler := handlers.NewMarketHandler(s.market, s.log)
	streamHandler := handlers.NewStreamHandler(s.market, s.log)

	router := api.NewRouter(riskHandler, marketHandler, streamHandler, s.log)
	server := api.New(s.cfg, s.log, router)

	go func() {
		if err := server.Start(); err != nil {
			s.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", s.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
