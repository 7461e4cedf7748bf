package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/internal/scheduler"
	"github.com/quantlab/riskd/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `주기 작업 스케줄러를 관리합니다.

등록 작업:
  price-refresh  - WATCHLIST 종목 시세 갱신 (기본: 매일 01:00)

Example:
  go run ./cmd/riskd scheduler start
  go run ./cmd/riskd scheduler list
  go run ./cmd/riskd scheduler run price-refresh`,
}

// schedulerStartCmd 스케줄러 실행 (포그라운드)
var schedulerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "스케줄러 시작",
	RunE:  runSchedulerStart,
}

// schedulerListCmd 등록 작업 목록
var schedulerListCmd = &cobra.Command{
	Use:   "list",
	Short: "등록된 작업 목록",
	RunE:  runSchedulerList,
}

// schedulerRunCmd 작업 즉시 실행
var schedulerRunCmd = &cobra.Command{
	Use:   "run JOB",
	Short: "작업 즉시 실행",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedulerRun,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// buildScheduler 스케줄러 + 기본 작업 등록 공용 경로
func buildScheduler(s *stack) (*scheduler.Scheduler, error) {
	sched := scheduler.New(s.log)

	refresh := jobs.NewPriceRefreshJob(s.market, s.cfg.Risk.Watchlist, marketdata.Period1Y, "", s.log)
	if err := sched.AddJob(refresh); err != nil {
		return nil, err
	}

	return sched, nil
}

func runSchedulerStart(cmd *cobra.Command, args []string) error {
	s, err := buildStack(true)
	if err != nil {
		return err
	}
	defer s.close()

	sched, err := buildScheduler(s)
	if err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	fmt.Println("✅ Scheduler running")
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}

func runSchedulerList(cmd *cobra.Command, args []string) error {
	s, err := buildStack(false)
	if err != nil {
		return err
	}
	defer s.close()

	sched, err := buildScheduler(s)
	if err != nil {
		return err
	}

	printHeader("Registered Jobs")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	printFooter()

	return nil
}

func runSchedulerRun(cmd *cobra.Command, args []string) error {
	name := args[0]

	s, err := buildStack(true)
	if err != nil {
		return err
	}
	defer s.close()

	sched, err := buildScheduler(s)
	if err != nil {
		return err
	}

	fmt.Printf("Running job %q...\n", name)
	if err := sched.RunNow(name); err != nil {
		return err
	}

	for _, r := range sched.History(name) {
		printRow(r.JobName, "success=%t duration=%s", r.Success, r.Duration)
	}
	return nil
}
