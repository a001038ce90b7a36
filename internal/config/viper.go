// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Engine struct {
		HomeCurrency string `mapstructure:"home_currency" yaml:"home_currency"`
	} `mapstructure:"engine" yaml:"engine"`

	Ownership struct {
		Accounts []string `mapstructure:"accounts" yaml:"accounts"`
		Wallets  []string `mapstructure:"wallets" yaml:"wallets"`
	} `mapstructure:"ownership" yaml:"ownership"`

	Senders struct {
		Allowed      []string `mapstructure:"allowed" yaml:"allowed"`
		FilterByList bool     `mapstructure:"filter_by_list" yaml:"filter_by_list"`
	} `mapstructure:"senders" yaml:"senders"`

	Messages struct {
		// Keywords overrides the built-in financial keyword prefilter.
		Keywords []string `mapstructure:"keywords" yaml:"keywords"`
	} `mapstructure:"messages" yaml:"messages"`

	AI struct {
		Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
		Model             string `mapstructure:"model" yaml:"model"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		FallbackCategory  string `mapstructure:"fallback_category" yaml:"fallback_category"`
		APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Database struct {
		URL      string `mapstructure:"url" yaml:"-"` // Never serialize credentials
		MaxConns int    `mapstructure:"max_conns" yaml:"max_conns"`
	} `mapstructure:"database" yaml:"database"`

	Categorization struct {
		AutoLearn           bool    `mapstructure:"auto_learn" yaml:"auto_learn"`
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold" yaml:"confidence_threshold"`
		CategoriesFile      string  `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Export struct {
		Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`
		IncludeHeaders bool   `mapstructure:"include_headers" yaml:"include_headers"`
	} `mapstructure:"export" yaml:"export"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.projectbudget")
	v.AddConfigPath(".projectbudget")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("BUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
		// Config file not found or invalid is OK, we'll use defaults and env vars
	}

	// 5. Secrets always come from unprefixed environment variables
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("database.url", "DATABASE_URL"); err != nil {
		fmt.Printf("Warning: failed to bind DATABASE_URL environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Engine defaults
	v.SetDefault("engine.home_currency", "SAR")

	// Ownership defaults: nothing is owned until the user says so
	v.SetDefault("ownership.accounts", []string{})
	v.SetDefault("ownership.wallets", []string{})

	// Sender defaults
	v.SetDefault("senders.allowed", []string{})
	v.SetDefault("senders.filter_by_list", false)

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.fallback_category", "Other")

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)

	// Categorization defaults
	v.SetDefault("categorization.auto_learn", true)
	v.SetDefault("categorization.confidence_threshold", 0.8)
	v.SetDefault("categorization.categories_file", "categories.yaml")

	// Export defaults
	v.SetDefault("export.delimiter", ",")
	v.SetDefault("export.include_headers", true)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate home currency
	if len(config.Engine.HomeCurrency) != 3 {
		return fmt.Errorf("engine.home_currency must be a 3-letter code, got: %s", config.Engine.HomeCurrency)
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	// Validate database pool size
	if config.Database.MaxConns < 1 || config.Database.MaxConns > 100 {
		return fmt.Errorf("database.max_conns must be between 1 and 100, got: %d", config.Database.MaxConns)
	}

	// Validate confidence threshold
	if config.Categorization.ConfidenceThreshold < 0.0 || config.Categorization.ConfidenceThreshold > 1.0 {
		return fmt.Errorf("categorization.confidence_threshold must be between 0.0 and 1.0, got: %f", config.Categorization.ConfidenceThreshold)
	}

	// Validate export delimiter
	if len(config.Export.Delimiter) != 1 {
		return fmt.Errorf("export delimiter must be a single character, got: %s", config.Export.Delimiter)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
