package store

import (
	"context"
	"sync"

	"github.com/iYassr/projectbudget/internal/models"
)

// MockCategoryStore is a mock category catalog for testing.
type MockCategoryStore struct {
	Categories []models.CategoryConfig

	// Error flag for testing error conditions
	LoadCategoriesError error
}

// LoadCategories returns the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}

// MockMerchantCategories is an in-memory merchant→category mapping that
// stands in for the Postgres table in tests.
type MockMerchantCategories struct {
	mu       sync.Mutex
	Mappings map[string]string

	GetError  error
	SaveError error
}

// GetMerchantCategory returns the mapped category, if any.
func (m *MockMerchantCategories) GetMerchantCategory(_ context.Context, merchant string) (string, bool, error) {
	if m.GetError != nil {
		return "", false, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.Mappings[merchant]
	return category, ok, nil
}

// SaveMerchantCategory records a mapping.
func (m *MockMerchantCategories) SaveMerchantCategory(_ context.Context, merchant, category string, _ float64) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Mappings == nil {
		m.Mappings = make(map[string]string)
	}
	m.Mappings[merchant] = category
	return nil
}
