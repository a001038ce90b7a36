package models

// Category is an assigned expense category with the method and confidence
// that produced it.
type Category struct {
	Name       string
	Confidence float64
	Method     string // "learned", "keyword", "ai" or "default"
}

// CategoryConfig represents a single category entry in the categories YAML file.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
