package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/sugup/internal/scheduler"
	"github.com/wonny/sugup/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "스케줄러 시작",
	Long: `정기 작업 스케줄러를 시작합니다.

Jobs:
  daily_pipeline    - 평일 18:00 수집/분석/리포트
  universe_refresh  - 월요일 07:00 유니버스 갱신

Example:
  go run ./cmd/sugup schedule
  go run ./cmd/sugup schedule --run daily_pipeline`,
	RunE: runSchedule,
}

var scheduleRunNow string

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleRunNow, "run", "", "지정한 작업을 즉시 한 번 실행")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	fmt.Println("=== sugup Scheduler ===")

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sched := scheduler.New(a.Logger)

	dailyJob := jobs.NewDailyPipelineJob(a.Collector, a.Analyzer, a.Ranker, a.Config, a.Logger)
	universeJob := jobs.NewUniverseRefreshJob(a.Universe, a.Config, a.Logger)

	if err := sched.AddJob(dailyJob); err != nil {
		return err
	}
	if err := sched.AddJob(universeJob); err != nil {
		return err
	}

	if scheduleRunNow != "" {
		// One-shot run path: execute synchronously and exit.
		switch scheduleRunNow {
		case dailyJob.Name():
			return dailyJob.Run(cmd.Context())
		case universeJob.Name():
			return universeJob.Run(cmd.Context())
		default:
			return fmt.Errorf("unknown job: %s", scheduleRunNow)
		}
	}

	sched.Start()
	defer sched.Stop()

	for _, name := range sched.GetAllJobs() {
		PrintInfo(fmt.Sprintf("Scheduled: %s", name))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	a.Logger.WithField("signal", sig.String()).Info("Shutdown signal received")
	return nil
}
