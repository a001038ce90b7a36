// Package report computes spending summaries and renders text reports over
// stored expenses.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iYassr/projectbudget/internal/dateutils"
	"github.com/iYassr/projectbudget/internal/models"
)

// MerchantTotal is a merchant with its aggregated spending.
type MerchantTotal struct {
	Merchant string
	Total    decimal.Decimal
}

// CategoryTotal is a category with its aggregated spending and share of the
// overall total.
type CategoryTotal struct {
	Category   string
	Total      decimal.Decimal
	Count      int
	Percentage float64
}

// MonthlySummary aggregates one calendar month of expenses.
type MonthlySummary struct {
	Year  int
	Month time.Month

	Total              decimal.Decimal
	TransactionCount   int
	AveragePerDay      decimal.Decimal
	AverageTransaction decimal.Decimal

	ByCategory    []CategoryTotal
	TopMerchants  []MerchantTotal
	DailySpending map[string]decimal.Decimal
}

// Summarize aggregates the given expenses for one month. Expenses outside the
// month are ignored, so callers can pass a wider slice.
func Summarize(expenses []models.Expense, year int, month time.Month) MonthlySummary {
	summary := MonthlySummary{
		Year:          year,
		Month:         month,
		Total:         decimal.Zero,
		DailySpending: make(map[string]decimal.Decimal),
	}

	byCategory := make(map[string]*CategoryTotal)
	byMerchant := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		day, ok := parseDay(e.Date)
		if !ok || day.Year() != year || day.Month() != month {
			continue
		}

		summary.Total = summary.Total.Add(e.Amount)
		summary.TransactionCount++

		category := e.Category
		if category == "" {
			category = "Uncategorized"
		}
		entry, exists := byCategory[category]
		if !exists {
			entry = &CategoryTotal{Category: category, Total: decimal.Zero}
			byCategory[category] = entry
		}
		entry.Total = entry.Total.Add(e.Amount)
		entry.Count++

		byMerchant[e.Merchant] = byMerchant[e.Merchant].Add(e.Amount)

		key := dateutils.DayKey(day)
		summary.DailySpending[key] = summary.DailySpending[key].Add(e.Amount)
	}

	days := daysInMonth(year, month)
	summary.AveragePerDay = summary.Total.Div(decimal.NewFromInt(int64(days))).Round(2)
	if summary.TransactionCount > 0 {
		summary.AverageTransaction = summary.Total.Div(decimal.NewFromInt(int64(summary.TransactionCount))).Round(2)
	}

	for _, entry := range byCategory {
		if summary.Total.IsPositive() {
			pct, _ := entry.Total.Div(summary.Total).Mul(decimal.NewFromInt(100)).Float64()
			entry.Percentage = pct
		}
		summary.ByCategory = append(summary.ByCategory, *entry)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if !summary.ByCategory[i].Total.Equal(summary.ByCategory[j].Total) {
			return summary.ByCategory[i].Total.GreaterThan(summary.ByCategory[j].Total)
		}
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	for merchant, total := range byMerchant {
		summary.TopMerchants = append(summary.TopMerchants, MerchantTotal{Merchant: merchant, Total: total})
	}
	sort.Slice(summary.TopMerchants, func(i, j int) bool {
		if !summary.TopMerchants[i].Total.Equal(summary.TopMerchants[j].Total) {
			return summary.TopMerchants[i].Total.GreaterThan(summary.TopMerchants[j].Total)
		}
		return summary.TopMerchants[i].Merchant < summary.TopMerchants[j].Merchant
	})
	if len(summary.TopMerchants) > 10 {
		summary.TopMerchants = summary.TopMerchants[:10]
	}

	return summary
}

// Comparison holds the month-over-month deltas between two summaries.
type Comparison struct {
	Previous MonthlySummary
	Current  MonthlySummary

	AmountChange      decimal.Decimal
	AmountChangePct   float64
	TransactionChange int
}

// Compare computes the change from the previous to the current summary.
func Compare(previous, current MonthlySummary) Comparison {
	c := Comparison{
		Previous:          previous,
		Current:           current,
		AmountChange:      current.Total.Sub(previous.Total),
		TransactionChange: current.TransactionCount - previous.TransactionCount,
	}
	if previous.Total.IsPositive() {
		pct, _ := c.AmountChange.Div(previous.Total).Mul(decimal.NewFromInt(100)).Float64()
		c.AmountChangePct = pct
	}
	return c
}

// Anomaly is a transaction whose amount is far above the recent norm.
type Anomaly struct {
	Date      string
	Merchant  string
	Amount    decimal.Decimal
	Category  string
	Deviation float64
}

// minAnomalySample is the smallest population the deviation statistics are
// meaningful for.
const minAnomalySample = 10

// DetectAnomalies flags expenses whose amount exceeds the mean by more than
// threshold standard deviations. Fewer than ten expenses yields no anomalies.
func DetectAnomalies(expenses []models.Expense, threshold float64) []Anomaly {
	if len(expenses) < minAnomalySample {
		return nil
	}

	amounts := make([]float64, len(expenses))
	var sum float64
	for i, e := range expenses {
		amounts[i], _ = e.Amount.Float64()
		sum += amounts[i]
	}
	mean := sum / float64(len(amounts))

	var variance float64
	for _, a := range amounts {
		variance += (a - mean) * (a - mean)
	}
	stddev := math.Sqrt(variance / float64(len(amounts)))
	if stddev == 0 {
		return nil
	}

	var anomalies []Anomaly
	cutoff := mean + threshold*stddev
	for i, e := range expenses {
		if amounts[i] <= cutoff {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			Date:      e.Date,
			Merchant:  e.Merchant,
			Amount:    e.Amount,
			Category:  e.Category,
			Deviation: (amounts[i] - mean) / stddev,
		})
	}
	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].Deviation > anomalies[j].Deviation
	})
	return anomalies
}

// MonthRange returns the [from, to) time window covering the month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// PreviousMonth steps one month back from the given year and month.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func parseDay(s string) (time.Time, bool) {
	ts, err := dateutils.ParseTimestamp(s)
	return ts, err == nil
}
