// Package categorizer assigns spending categories to extracted expenses.
//
// Categorization runs as a strategy chain: learned merchant mappings first,
// then keyword rules from the category catalog, then the Gemini API, then a
// configured fallback. The first strategy that answers wins; high-confidence
// answers are learned back into the merchant mapping store so the next run
// never pays for the same merchant twice.
package categorizer

import (
	"context"

	"github.com/iYassr/projectbudget/internal/models"
)

// Categorization methods recorded on models.Category.
const (
	MethodLearned  = "learned"
	MethodKeyword  = "keyword"
	MethodAI       = "ai"
	MethodFallback = "default"
)

// Confidence per method. Keyword matches rank below AI answers: a keyword
// hit on a merchant fragment is a guess, an AI answer saw the whole picture.
const (
	ConfidenceLearned  = 1.0
	ConfidenceKeyword  = 0.8
	ConfidenceAI       = 0.9
	ConfidenceFallback = 0.5
)

// CategorizationStrategy defines one method for categorizing an expense.
type CategorizationStrategy interface {
	// Categorize attempts to categorize an expense using this strategy.
	// Returns the category, a boolean indicating if categorization was
	// successful, and any error encountered during the process.
	Categorize(ctx context.Context, expense models.Expense) (models.Category, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}

// MerchantCategoryStore is the learned merchant→category mapping the chain
// reads from and writes back to. *store.Postgres implements it.
type MerchantCategoryStore interface {
	GetMerchantCategory(ctx context.Context, merchant string) (string, bool, error)
	SaveMerchantCategory(ctx context.Context, merchant, category string, confidence float64) error
}
