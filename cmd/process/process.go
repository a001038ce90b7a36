// Package process implements the message-to-expense pipeline command.
package process

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iYassr/projectbudget/cmd/common"
	"github.com/iYassr/projectbudget/cmd/root"
	"github.com/iYassr/projectbudget/internal/categorizer"
	"github.com/iYassr/projectbudget/internal/engine"
	"github.com/iYassr/projectbudget/internal/export"
	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
	"github.com/iYassr/projectbudget/internal/msgstore"
)

var (
	thisMonth bool
	lastMonth bool
	startDate string
	endDate   string
	dryRun    bool
	csvFile   string
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Extract expenses from messages, categorize, and store them",
	Long: `Read bank and wallet messages from an exported source, extract structured
expenses, categorize them, and store them in the expense database.`,
	Run: processFunc,
}

func init() {
	Cmd.Flags().BoolVar(&thisMonth, "this-month", false, "Only process messages from the current month")
	Cmd.Flags().BoolVar(&lastMonth, "last-month", false, "Only process messages from the previous month")
	Cmd.Flags().StringVar(&startDate, "start-date", "", "Only process messages on or after this date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&endDate, "end-date", "", "Only process messages on or before this date (YYYY-MM-DD)")
	Cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Extract and categorize without writing to the database")
	Cmd.Flags().StringVarP(&csvFile, "output", "o", "", "Also write the extracted expenses to a CSV file")
}

func processFunc(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	cfg := root.Cfg
	logger := logging.NewLogrusAdapterFromLogger(root.Log)

	reader, err := common.NewReader(root.SourceDir, root.SourceFormat, logger)
	if err != nil {
		root.Log.Fatalf("Error opening message source: %v", err)
	}

	messages, err := reader.Read()
	if err != nil {
		root.Log.Fatalf("Error reading messages: %v", err)
	}
	root.Log.Infof("Read %d messages from %s", len(messages), root.SourceDir)

	from, to, err := common.DateWindow(thisMonth, lastMonth, startDate, endDate)
	if err != nil {
		root.Log.Fatalf("Error resolving date range: %v", err)
	}

	keywords := cfg.Messages.Keywords
	if len(keywords) == 0 {
		keywords = msgstore.DefaultFinancialKeywords()
	}
	filter := msgstore.Filter{
		Keywords: keywords,
		From:     from,
		To:       to,
	}
	if cfg.Senders.FilterByList {
		filter.Senders = cfg.Senders.Allowed
	}
	messages = msgstore.Apply(messages, filter)
	root.Log.Infof("%d messages remain after filtering", len(messages))

	expenses := extractExpenses(messages, cfg.Engine.HomeCurrency,
		engine.NewOwnership(cfg.Ownership.Accounts, cfg.Ownership.Wallets))
	root.Log.Infof("Extracted %d expenses", len(expenses))

	if len(expenses) == 0 {
		root.Log.Info("Nothing to store")
		return
	}

	if dryRun {
		categorize(ctx, expenses, nil)
		writeCSV(expenses)
		root.Log.Info("Dry run complete, database not touched")
		return
	}

	pg, err := common.NewStore(ctx, cfg, root.Log)
	if err != nil {
		root.Log.Fatalf("Error connecting to database: %v", err)
	}
	defer pg.Close()

	categorize(ctx, expenses, pg)

	inserted, err := pg.AddExpenses(ctx, expenses)
	if err != nil {
		root.Log.Fatalf("Error storing expenses: %v", err)
	}
	root.Log.Infof("Stored %d new expenses (%d duplicates skipped)", inserted, len(expenses)-inserted)

	writeCSV(expenses)
}

// extractExpenses runs the extraction engine over the messages and keeps the
// transactions. Suppressed messages are logged at debug level.
func extractExpenses(messages []models.RawMessage, homeCurrency string, own engine.Ownership) []models.Expense {
	eng := engine.New(homeCurrency)

	var expenses []models.Expense
	for _, msg := range messages {
		result := eng.Extract(msg, own)
		switch result.Status {
		case engine.StatusTransaction:
			tx := result.Transaction
			expenses = append(expenses, models.Expense{
				Date:       msg.Timestamp,
				Amount:     tx.Amount,
				Currency:   tx.Currency,
				Merchant:   tx.Merchant,
				Kind:       string(tx.Kind),
				Sender:     msg.Sender,
				RawMessage: msg.Text,
			})
		case engine.StatusSuppressed:
			root.Log.WithFields(map[string]interface{}{
				"reason": result.Reason,
				"sender": msg.Sender,
			}).Debug("Message suppressed")
		}
	}
	return expenses
}

// categorize assigns a category to every expense. mappings may be nil, in
// which case learned lookups and auto-learning are skipped.
func categorize(ctx context.Context, expenses []models.Expense, mappings categorizer.MerchantCategoryStore) {
	c, cleanup, err := common.NewCategorizer(ctx, root.Cfg, mappings, root.Log)
	if err != nil {
		root.Log.Fatalf("Error building categorizer: %v", err)
	}
	defer cleanup()

	for i := range expenses {
		category := c.Categorize(ctx, expenses[i])
		expenses[i].Category = category.Name
	}
}

func writeCSV(expenses []models.Expense) {
	if csvFile == "" {
		return
	}
	if err := export.WriteExpensesToCSV(expenses, csvFile); err != nil {
		root.Log.Fatalf("Error writing CSV file: %v", err)
	}
	root.Log.Infof("Wrote %d expenses to %s", len(expenses), csvFile)
}
