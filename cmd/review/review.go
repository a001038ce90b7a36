// Package review implements the monthly report command.
package review

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iYassr/projectbudget/cmd/common"
	"github.com/iYassr/projectbudget/cmd/root"
	"github.com/iYassr/projectbudget/internal/export"
	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/report"
)

var (
	year       int
	month      int
	outputFile string
)

// Cmd represents the review command
var Cmd = &cobra.Command{
	Use:   "review",
	Short: "Review monthly spending",
	Long: `Build a monthly spending report from stored expenses: totals, category and
merchant breakdowns, month-over-month change, and unusual transactions.`,
	Run: reviewFunc,
}

func init() {
	now := time.Now()
	Cmd.Flags().IntVarP(&year, "year", "y", now.Year(), "Report year")
	Cmd.Flags().IntVarP(&month, "month", "m", int(now.Month()), "Report month (1-12)")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
}

func reviewFunc(cmd *cobra.Command, args []string) {
	if month < 1 || month > 12 {
		root.Log.Fatalf("Invalid month: %d", month)
	}

	ctx := context.Background()
	pg, err := common.NewStore(ctx, root.Cfg, root.Log)
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}
	defer pg.Close()

	reporter := report.NewReporter(pg, logging.NewLogrusAdapterFromLogger(root.Log))
	text, err := reporter.Monthly(ctx, year, time.Month(month))
	if err != nil {
		root.Log.Fatalf("Error building report: %v", err)
	}

	if outputFile != "" {
		if err := export.WriteReport(text, outputFile); err != nil {
			root.Log.Fatalf("Error writing report: %v", err)
		}
		root.Log.Infof("Report written to %s", outputFile)
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
}
