package models

import (
	"github.com/shopspring/decimal"
)

// Transaction kinds as persisted in the expenses table and CSV exports.
const (
	KindExpense  = "expense"
	KindTransfer = "transfer"
)

// Expense represents one parsed and categorized transaction ready for
// persistence or export.
type Expense struct {
	ID         string          `csv:"ID"`         // UUID assigned at insert time
	Date       string          `csv:"Date"`       // timestamp of the source message
	Amount     decimal.Decimal `csv:"Amount"`     // always > 0
	Currency   string          `csv:"Currency"`   // 3-letter code (SAR, USD, ...)
	Merchant   string          `csv:"Merchant"`   // normalized counterparty name
	Kind       string          `csv:"Kind"`       // KindExpense or KindTransfer
	Category   string          `csv:"Category"`   // assigned by the categorizer
	Sender     string          `csv:"Sender"`     // message sender identifier
	RawMessage string          `csv:"RawMessage"` // original message text
	Notes      string          `csv:"Notes"`
}

// MarshalCSV implements gocsv marshaling with a fixed column order and
// two-decimal amount formatting.
func (e *Expense) MarshalCSV() ([]string, error) {
	return []string{
		e.ID,
		e.Date,
		e.Amount.StringFixed(2),
		e.Currency,
		e.Merchant,
		e.Kind,
		e.Category,
		e.Sender,
		e.RawMessage,
		e.Notes,
	}, nil
}

// UnmarshalCSV implements gocsv unmarshaling for the column order produced
// by MarshalCSV.
func (e *Expense) UnmarshalCSV(record []string) error {
	e.ID = record[0]
	e.Date = record[1]
	var err error
	e.Amount, err = decimal.NewFromString(record[2])
	if err != nil {
		return err
	}
	e.Currency = record[3]
	e.Merchant = record[4]
	e.Kind = record[5]
	e.Category = record[6]
	e.Sender = record[7]
	e.RawMessage = record[8]
	e.Notes = record[9]
	return nil
}
