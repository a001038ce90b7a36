package categorizer

import (
	"context"

	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
)

// Options configures a Categorizer chain.
type Options struct {
	// FallbackCategory is assigned when every strategy misses.
	FallbackCategory string
	// AutoLearn writes confident categorizations back to the merchant store.
	AutoLearn bool
	// ConfidenceThreshold is the minimum confidence required to learn a mapping.
	ConfidenceThreshold float64
}

// Categorizer runs a chain of strategies over an expense and settles on a
// category. The first strategy that returns a hit wins.
type Categorizer struct {
	strategies []CategorizationStrategy
	store      MerchantCategoryStore
	opts       Options
	logger     logging.Logger
}

// New creates a Categorizer over the given strategies, in priority order.
// store may be nil when learning is disabled.
func New(strategies []CategorizationStrategy, store MerchantCategoryStore, opts Options, logger logging.Logger) *Categorizer {
	if opts.FallbackCategory == "" {
		opts.FallbackCategory = "Other"
	}
	return &Categorizer{strategies: strategies, store: store, opts: opts, logger: logger}
}

// Categorize resolves a category for the expense. Strategy errors are logged
// and the chain continues; the fallback category is returned when nothing hits.
func (c *Categorizer) Categorize(ctx context.Context, expense models.Expense) models.Category {
	for _, strategy := range c.strategies {
		category, ok, err := strategy.Categorize(ctx, expense)
		if err != nil {
			c.logger.Warn("Categorization strategy failed",
				logging.Field{Key: "strategy", Value: strategy.Name()},
				logging.Field{Key: logging.FieldMerchant, Value: expense.Merchant},
				logging.Field{Key: "error", Value: err.Error()})
			continue
		}
		if !ok {
			continue
		}

		c.logger.Debug("Expense categorized",
			logging.Field{Key: "strategy", Value: strategy.Name()},
			logging.Field{Key: logging.FieldMerchant, Value: expense.Merchant},
			logging.Field{Key: logging.FieldCategory, Value: category.Name})
		c.learn(ctx, expense.Merchant, category)
		return category
	}

	return models.Category{
		Name:       c.opts.FallbackCategory,
		Confidence: ConfidenceFallback,
		Method:     MethodFallback,
	}
}

// learn persists a merchant-to-category mapping so future runs can skip the
// slower strategies. Already-learned hits are not written again.
func (c *Categorizer) learn(ctx context.Context, merchant string, category models.Category) {
	if !c.opts.AutoLearn || c.store == nil || merchant == "" {
		return
	}
	if category.Method == MethodLearned {
		return
	}
	if category.Confidence < c.opts.ConfidenceThreshold {
		return
	}

	if err := c.store.SaveMerchantCategory(ctx, merchant, category.Name, category.Confidence); err != nil {
		c.logger.Warn("Failed to learn merchant category",
			logging.Field{Key: logging.FieldMerchant, Value: merchant},
			logging.Field{Key: logging.FieldCategory, Value: category.Name},
			logging.Field{Key: "error", Value: err.Error()})
	}
}
