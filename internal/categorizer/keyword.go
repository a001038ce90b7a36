package categorizer

import (
	"context"
	"strings"

	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
)

// KeywordStrategy matches the merchant name and raw message against the
// keyword lists of the category catalog. First category with a matching
// keyword wins, in catalog order.
type KeywordStrategy struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy from loaded catalog entries.
func NewKeywordStrategy(categories []models.CategoryConfig, logger logging.Logger) *KeywordStrategy {
	return &KeywordStrategy{categories: categories, logger: logger}
}

// Name returns the name of this strategy.
func (s *KeywordStrategy) Name() string {
	return "keyword"
}

// Categorize scans the expense text for category keywords. Matching is
// case-insensitive substring matching, which keeps Arabic keywords working
// without any stemming.
func (s *KeywordStrategy) Categorize(_ context.Context, expense models.Expense) (models.Category, bool, error) {
	text := strings.ToLower(expense.Merchant + " " + expense.RawMessage)
	if strings.TrimSpace(text) == "" {
		return models.Category{}, false, nil
	}

	for _, category := range s.categories {
		for _, keyword := range category.Keywords {
			kw := strings.ToLower(strings.TrimSpace(keyword))
			if kw == "" {
				continue
			}
			if strings.Contains(text, kw) {
				s.logger.Debug("Keyword match",
					logging.Field{Key: logging.FieldMerchant, Value: expense.Merchant},
					logging.Field{Key: logging.FieldCategory, Value: category.Name},
					logging.Field{Key: "keyword", Value: keyword})
				return models.Category{
					Name:       category.Name,
					Confidence: ConfidenceKeyword,
					Method:     MethodKeyword,
				}, true, nil
			}
		}
	}
	return models.Category{}, false, nil
}
