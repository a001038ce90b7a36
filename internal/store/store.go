// Package store provides persistence: the PostgreSQL expense database and
// the YAML category catalog.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/iYassr/projectbudget/internal/config"
	"github.com/iYassr/projectbudget/internal/models"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// CategoryStore manages loading of the category keyword catalog.
type CategoryStore struct {
	CategoriesFile string
}

// NewCategoryStore creates a new store for category configuration data
func NewCategoryStore(categoriesFile string) *CategoryStore {
	return &CategoryStore{
		CategoriesFile: categoriesFile,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	// Check if it's an absolute path
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	// Common locations to check for config files
	locations := []string{
		filename,                          // Current directory
		filepath.Join("config", filename), // ./config/ directory
	}

	// Try each location
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// If still not found, check in user's home directory under .projectbudget/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".projectbudget", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads categories from the YAML file. A missing file is not
// an error: categorization degrades to the AI/fallback strategies.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Categories file not found: %s", filename)
			return []models.CategoryConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	// Preferred structure: "categories: [...]"
	var categoriesConfig models.CategoriesConfig
	err = yaml.Unmarshal(data, &categoriesConfig)
	if err == nil && len(categoriesConfig.Categories) > 0 {
		log.Debugf("Loaded %d categories from %s", len(categoriesConfig.Categories), filePath)
		return categoriesConfig.Categories, nil
	}

	// Fallback: a bare top-level array, for hand-written files
	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}
	log.Debugf("Loaded %d categories from %s using direct array", len(categories), filePath)
	return categories, nil
}
