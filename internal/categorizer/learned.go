package categorizer

import (
	"context"
	"strings"

	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
)

// LearnedStrategy answers from the merchant→category mappings accumulated
// by earlier runs. It is the cheapest and most reliable strategy, so it
// always goes first in the chain.
type LearnedStrategy struct {
	store  MerchantCategoryStore
	logger logging.Logger
}

// NewLearnedStrategy creates a LearnedStrategy over the mapping store.
func NewLearnedStrategy(store MerchantCategoryStore, logger logging.Logger) *LearnedStrategy {
	return &LearnedStrategy{store: store, logger: logger}
}

// Name returns the name of this strategy.
func (s *LearnedStrategy) Name() string {
	return "learned"
}

// Categorize looks the merchant up in the mapping store. A store error is
// logged and treated as a miss so the chain can continue.
func (s *LearnedStrategy) Categorize(ctx context.Context, expense models.Expense) (models.Category, bool, error) {
	if s.store == nil || strings.TrimSpace(expense.Merchant) == "" {
		return models.Category{}, false, nil
	}

	category, found, err := s.store.GetMerchantCategory(ctx, expense.Merchant)
	if err != nil {
		s.logger.WithError(err).Warn("Merchant mapping lookup failed",
			logging.Field{Key: logging.FieldMerchant, Value: expense.Merchant})
		return models.Category{}, false, nil
	}
	if !found {
		return models.Category{}, false, nil
	}

	return models.Category{
		Name:       category,
		Confidence: ConfidenceLearned,
		Method:     MethodLearned,
	}, true, nil
}
