// Package export implements the expense export command.
package export

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iYassr/projectbudget/cmd/common"
	"github.com/iYassr/projectbudget/cmd/root"
	"github.com/iYassr/projectbudget/internal/export"
	"github.com/iYassr/projectbudget/internal/store"
)

var (
	outputFile   string
	outputFormat string
	startDate    string
	endDate      string
	category     string
	kind         string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored expenses to CSV or JSON",
	Long:  `Export stored expenses to a CSV or JSON file, optionally filtered by date range, category, or kind.`,
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (required)")
	Cmd.Flags().StringVar(&outputFormat, "export-format", "csv", "Output format: csv or json")
	Cmd.Flags().StringVar(&startDate, "start-date", "", "Only export expenses on or after this date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&endDate, "end-date", "", "Only export expenses on or before this date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&category, "category", "", "Only export expenses in this category")
	Cmd.Flags().StringVar(&kind, "kind", "", "Only export expenses of this kind (expense or transfer)")
	if err := Cmd.MarkFlagRequired("output"); err != nil {
		root.Log.Warnf("Failed to mark output flag required: %v", err)
	}
}

func exportFunc(cmd *cobra.Command, args []string) {
	from, to, err := common.DateWindow(false, false, startDate, endDate)
	if err != nil {
		root.Log.Fatalf("Error resolving date range: %v", err)
	}

	ctx := context.Background()
	pg, err := common.NewStore(ctx, root.Cfg, root.Log)
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}
	defer pg.Close()

	expenses, err := pg.GetExpenses(ctx, store.ExpenseQuery{
		From:     from,
		To:       to,
		Category: category,
		Kind:     kind,
	})
	if err != nil {
		root.Log.Fatalf("Error loading expenses: %v", err)
	}
	if len(expenses) == 0 {
		root.Log.Fatal("No expenses to export")
	}

	switch outputFormat {
	case "csv":
		err = export.WriteExpensesToCSV(expenses, outputFile)
	case "json":
		err = export.WriteExpensesToJSON(expenses, outputFile)
	default:
		root.Log.Fatalf("Unsupported export format %q (must be csv or json)", outputFormat)
	}
	if err != nil {
		root.Log.Fatalf("Error exporting expenses: %v", err)
	}

	root.Log.Infof("Exported %d expenses to %s", len(expenses), outputFile)
}
