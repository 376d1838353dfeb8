package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivalero/marketlens/internal/scheduler"
	"github.com/ivalero/marketlens/internal/scheduler/jobs"
)

// schedulerCmd runs the recurring jobs in the foreground.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the job scheduler",
	Long: `Runs the recurring jobs in the foreground:

  market_refresh     - nightly full refresh of every market (23:30)
  store_maintenance  - weekly purge of superseded snapshots (Sun 03:00)

Example:
  go run ./cmd/marketlens scheduler
  go run ./cmd/marketlens scheduler --run market_refresh`,
	RunE: runScheduler,
}

var schedulerRunNow string

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.Flags().StringVar(&schedulerRunNow, "run", "", "run one job immediately and exit")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	sched := scheduler.New(app.log)
	if err := sched.AddJob(jobs.NewRefreshJob(app.controller, app.log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewMaintenanceJob(app.stores, app.log)); err != nil {
		return err
	}

	if schedulerRunNow != "" {
		if err := sched.RunJob(schedulerRunNow); err != nil {
			return fmt.Errorf("%w (registered jobs: %s)", err, strings.Join(sched.Jobs(), ", "))
		}
		history, err := sched.History(schedulerRunNow)
		if err != nil {
			return err
		}
		fmt.Printf("Job %s finished, success rate %.1f%%\n",
			schedulerRunNow, history.SuccessRate()*100)
		return nil
	}

	sched.Start()
	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
