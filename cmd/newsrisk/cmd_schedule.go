package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var scheduleFlags struct {
	interval time.Duration
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline now and then on a fixed interval until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().DurationVar(&scheduleFlags.interval, "interval", 0, "Time between runs (defaults to scheduler.interval)")
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, _, err := newApplication(ctx)
	if err != nil {
		return err
	}
	return application.Schedule(ctx, scheduleFlags.interval)
}
