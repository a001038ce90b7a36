package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
	"github.com/iYassr/projectbudget/internal/store"
)

func expense(date, merchant, category string, amount float64) models.Expense {
	return models.Expense{
		Date:     date,
		Amount:   decimal.NewFromFloat(amount),
		Currency: "SAR",
		Merchant: merchant,
		Kind:     models.KindExpense,
		Category: category,
	}
}

func marchExpenses() []models.Expense {
	return []models.Expense{
		expense("2025-03-01 09:15:00", "SASCO QEN", "Transport", 114.38),
		expense("2025-03-01 20:40:00", "ALBAIK", "Food & Dining", 52.00),
		expense("2025-03-05 12:00:00", "DANUBE", "Groceries", 310.25),
		expense("2025-03-12 18:30:00", "ALBAIK", "Food & Dining", 48.00),
		expense("2025-03-20 10:00:00", "AMAZON", "Shopping", 199.99),
		// Previous month, must not count toward March.
		expense("2025-02-14 10:00:00", "DANUBE", "Groceries", 250.00),
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(marchExpenses(), 2025, time.March)

	assert.Equal(t, 5, s.TransactionCount)
	assert.Equal(t, "724.62", s.Total.StringFixed(2))
	// March has 31 days.
	assert.Equal(t, "23.38", s.AveragePerDay.StringFixed(2))
	assert.Equal(t, "144.92", s.AverageTransaction.StringFixed(2))

	require.NotEmpty(t, s.ByCategory)
	assert.Equal(t, "Groceries", s.ByCategory[0].Category)
	assert.Equal(t, "310.25", s.ByCategory[0].Total.StringFixed(2))
	assert.InDelta(t, 42.8, s.ByCategory[0].Percentage, 0.1)

	require.NotEmpty(t, s.TopMerchants)
	assert.Equal(t, "DANUBE", s.TopMerchants[0].Merchant)

	assert.Equal(t, "166.38", s.DailySpending["2025-03-01"].StringFixed(2))
	_, hasFebruary := s.DailySpending["2025-02-14"]
	assert.False(t, hasFebruary)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, 2025, time.March)

	assert.Equal(t, 0, s.TransactionCount)
	assert.True(t, s.Total.IsZero())
	assert.True(t, s.AverageTransaction.IsZero())
	assert.Empty(t, s.ByCategory)
	assert.Empty(t, s.TopMerchants)
}

func TestSummarize_UncategorizedBucket(t *testing.T) {
	s := Summarize([]models.Expense{
		expense("2025-03-03 11:00:00", "XYZ", "", 75.00),
	}, 2025, time.March)

	require.Len(t, s.ByCategory, 1)
	assert.Equal(t, "Uncategorized", s.ByCategory[0].Category)
}

func TestCompare(t *testing.T) {
	expenses := marchExpenses()
	current := Summarize(expenses, 2025, time.March)
	previous := Summarize(expenses, 2025, time.February)

	c := Compare(previous, current)
	assert.Equal(t, "474.62", c.AmountChange.StringFixed(2))
	assert.InDelta(t, 189.8, c.AmountChangePct, 0.1)
	assert.Equal(t, 4, c.TransactionChange)
}

func TestCompare_EmptyPrevious(t *testing.T) {
	current := Summarize(marchExpenses(), 2025, time.March)

	c := Compare(MonthlySummary{}, current)
	assert.Equal(t, "724.62", c.AmountChange.StringFixed(2))
	assert.Zero(t, c.AmountChangePct)
}

func TestDetectAnomalies(t *testing.T) {
	var expenses []models.Expense
	for i := 0; i < 20; i++ {
		expenses = append(expenses, expense(
			fmt.Sprintf("2025-03-%02d 12:00:00", i+1), "ALBAIK", "Food & Dining", 50.00))
	}
	expenses = append(expenses, expense("2025-03-25 16:00:00", "JARIR", "Shopping", 4500.00))

	anomalies := DetectAnomalies(expenses, 2.0)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "JARIR", anomalies[0].Merchant)
	assert.Greater(t, anomalies[0].Deviation, 2.0)
}

func TestDetectAnomalies_SmallSample(t *testing.T) {
	expenses := []models.Expense{
		expense("2025-03-01 12:00:00", "ALBAIK", "Food & Dining", 50.00),
		expense("2025-03-02 12:00:00", "JARIR", "Shopping", 9000.00),
	}
	assert.Empty(t, DetectAnomalies(expenses, 2.0))
}

func TestDetectAnomalies_UniformAmounts(t *testing.T) {
	var expenses []models.Expense
	for i := 0; i < 15; i++ {
		expenses = append(expenses, expense(
			fmt.Sprintf("2025-03-%02d 12:00:00", i+1), "ALBAIK", "Food & Dining", 50.00))
	}
	assert.Empty(t, DetectAnomalies(expenses, 2.0))
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2025, time.December)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(2025, time.January)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.December, m)

	y, m = PreviousMonth(2025, time.July)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.June, m)
}

type stubSource struct {
	expenses []models.Expense
}

func (s *stubSource) GetExpenses(_ context.Context, q store.ExpenseQuery) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range s.expenses {
		day, ok := parseDay(e.Date)
		if !ok {
			continue
		}
		if !q.From.IsZero() && day.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !day.Before(q.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func TestReporter_Monthly(t *testing.T) {
	source := &stubSource{expenses: marchExpenses()}
	r := NewReporter(source, logging.NewMockLogger())

	text, err := r.Monthly(context.Background(), 2025, time.March)
	require.NoError(t, err)

	assert.Contains(t, text, "MONTHLY EXPENSE REPORT: 2025-03")
	assert.Contains(t, text, "Total Spending:        724.62")
	assert.Contains(t, text, "Total Transactions:    5")
	assert.Contains(t, text, "Transaction Change:    +4")
	assert.Contains(t, text, "Groceries")
	assert.Contains(t, text, "DANUBE")
}
