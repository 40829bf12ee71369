package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one pipeline run",
	Args:  cobra.NoArgs,
	RunE:  runOnce,
}

func runOnce(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	application, logger, err := newApplication(ctx)
	if err != nil {
		return err
	}

	report, err := application.Run(ctx)
	if err != nil {
		logger.Error("application stopped", "error", err)
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:       %s\n", report.RunID)
	fmt.Fprintf(out, "Articles:  %d of %d results\n", report.Articles, report.SearchResults)
	fmt.Fprintf(out, "Plans:     %d of %d action points\n", report.FulfilledCount(), len(report.Fulfillments))
	fmt.Fprintf(out, "Duration:  %s\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	return nil
}
