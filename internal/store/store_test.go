package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	err := os.WriteFile(path, []byte(content), 0600)
	assert.NoError(t, err)
}

func TestNewCategoryStore(t *testing.T) {
	store := NewCategoryStore("categories.yaml")
	assert.Equal(t, "categories.yaml", store.CategoriesFile)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()

	// Create a test file
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "test content")

	store := NewCategoryStore("")

	// Test with absolute path that exists
	file, err := store.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	// Test with file that doesn't exist
	_, err = store.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestLoadCategories_TopLevelKey(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	writeFile(t, file, `categories:
  - name: Food & Dining
    keywords: ["restaurant", "keeta", "مطعم"]
  - name: Transportation
    keywords: ["uber", "careem", "sasco", "بنزين"]
`)

	store := NewCategoryStore(file)
	categories, err := store.LoadCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Food & Dining", categories[0].Name)
	assert.Contains(t, categories[0].Keywords, "مطعم")
	assert.Equal(t, "Transportation", categories[1].Name)
}

func TestLoadCategories_DirectArray(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	writeFile(t, file, `- name: Groceries
  keywords: ["supermarket", "danube"]
- name: Rent
  keywords: []
`)

	store := NewCategoryStore(file)
	categories, err := store.LoadCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Groceries", categories[0].Name)
}

func TestLoadCategories_MissingFileIsNotAnError(t *testing.T) {
	store := NewCategoryStore(filepath.Join(t.TempDir(), "categories.yaml"))
	categories, err := store.LoadCategories()
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestLoadCategories_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	writeFile(t, file, ": not [ yaml")

	store := NewCategoryStore(file)
	_, err := store.LoadCategories()
	assert.Error(t, err)
}

func TestMockMerchantCategories(t *testing.T) {
	ctx := context.Background()
	m := &MockMerchantCategories{}

	_, ok, err := m.GetMerchantCategory(ctx, "SASCO QEN")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.SaveMerchantCategory(ctx, "SASCO QEN", "Transportation", 1.0))

	category, ok, err := m.GetMerchantCategory(ctx, "SASCO QEN")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Transportation", category)
}
