package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
	"github.com/iYassr/projectbudget/internal/store"
)

// anomalyThreshold is the number of standard deviations above the mean an
// amount must be to be flagged.
const anomalyThreshold = 2.0

// ExpenseSource supplies expenses for reporting. *store.Postgres satisfies it.
type ExpenseSource interface {
	GetExpenses(ctx context.Context, q store.ExpenseQuery) ([]models.Expense, error)
}

// Reporter builds text reports from stored expenses.
type Reporter struct {
	source ExpenseSource
	logger logging.Logger
}

// NewReporter creates a Reporter over the given source.
func NewReporter(source ExpenseSource, logger logging.Logger) *Reporter {
	return &Reporter{source: source, logger: logger}
}

// Monthly renders the report for one calendar month, including a comparison
// with the previous month and any unusual transactions from the last 90 days.
func (r *Reporter) Monthly(ctx context.Context, year int, month time.Month) (string, error) {
	_, to := MonthRange(year, month)
	prevYear, prevMonth := PreviousMonth(year, month)
	prevFrom, _ := MonthRange(prevYear, prevMonth)

	expenses, err := r.source.GetExpenses(ctx, store.ExpenseQuery{From: prevFrom, To: to})
	if err != nil {
		return "", fmt.Errorf("loading expenses: %w", err)
	}

	current := Summarize(expenses, year, month)
	previous := Summarize(expenses, prevYear, prevMonth)
	comparison := Compare(previous, current)

	recent, err := r.source.GetExpenses(ctx, store.ExpenseQuery{From: to.AddDate(0, 0, -90), To: to})
	if err != nil {
		return "", fmt.Errorf("loading recent expenses: %w", err)
	}
	anomalies := DetectAnomalies(recent, anomalyThreshold)

	r.logger.Debug("Monthly report built",
		logging.Field{Key: "year", Value: year},
		logging.Field{Key: "month", Value: int(month)},
		logging.Field{Key: logging.FieldCount, Value: current.TransactionCount})

	return Render(current, comparison, anomalies), nil
}

// Render formats a monthly summary as a plain-text report.
func Render(summary MonthlySummary, comparison Comparison, anomalies []Anomaly) string {
	var b strings.Builder
	rule := strings.Repeat("=", 64)

	fmt.Fprintf(&b, "MONTHLY EXPENSE REPORT: %d-%02d\n\n", summary.Year, int(summary.Month))

	b.WriteString("OVERVIEW\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Spending:        %s\n", summary.Total.StringFixed(2))
	fmt.Fprintf(&b, "Total Transactions:    %d\n", summary.TransactionCount)
	fmt.Fprintf(&b, "Average per Day:       %s\n", summary.AveragePerDay.StringFixed(2))
	fmt.Fprintf(&b, "Average Transaction:   %s\n", summary.AverageTransaction.StringFixed(2))

	b.WriteString("\nMONTH-OVER-MONTH CHANGE\n")
	b.WriteString(rule + "\n")
	sign := ""
	if !comparison.AmountChange.IsNegative() {
		sign = "+"
	}
	fmt.Fprintf(&b, "Change:                %s%s (%+.1f%%)\n", sign, comparison.AmountChange.StringFixed(2), comparison.AmountChangePct)
	fmt.Fprintf(&b, "Transaction Change:    %+d\n", comparison.TransactionChange)

	b.WriteString("\nTOP CATEGORIES\n")
	b.WriteString(rule + "\n")
	for i, cat := range summary.ByCategory {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %-20s %12s (%5.1f%%)\n", i+1, cat.Category, cat.Total.StringFixed(2), cat.Percentage)
	}

	b.WriteString("\nTOP MERCHANTS\n")
	b.WriteString(rule + "\n")
	for i, m := range summary.TopMerchants {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "%d. %-30s %12s\n", i+1, m.Merchant, m.Total.StringFixed(2))
	}

	if len(anomalies) > 0 {
		b.WriteString("\nUNUSUAL TRANSACTIONS\n")
		b.WriteString(rule + "\n")
		for i, a := range anomalies {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %-20s %12s on %s\n", a.Merchant, a.Amount.StringFixed(2), a.Date)
		}
	}

	return b.String()
}
