// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_MATCH_CACHE_BACKEND
const EnvPrefix = "RESUME_MATCH"

// Config represents the CLI configuration. Every field has a default; a config
// file and RESUME_MATCH_* environment variables override them in that order.
type Config struct {
	Log         LogConfig       `mapstructure:"log"`
	Embedding   EmbeddingConfig `mapstructure:"embedding"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Analysis    AnalysisConfig  `mapstructure:"analysis"`
	MetricsFile string          `mapstructure:"metrics_file"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// EmbeddingConfig selects and tunes the embedding provider
type EmbeddingConfig struct {
	Provider    string        `mapstructure:"provider" validate:"oneof=none gemini openai"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxAttempts int           `mapstructure:"max_attempts" validate:"gte=1,lte=10"`
	Backoff     time.Duration `mapstructure:"backoff" validate:"gte=0"`
	Cooldown    time.Duration `mapstructure:"cooldown" validate:"gte=0"`
}

// CacheConfig selects the JD keyword cache backend
type CacheConfig struct {
	Backend     string        `mapstructure:"backend" validate:"oneof=none memory redis postgres"`
	TTL         time.Duration `mapstructure:"ttl" validate:"gte=0"`
	MaxEntries  int           `mapstructure:"max_entries" validate:"gte=0"`
	RedisURL    string        `mapstructure:"redis_url"`
	DatabaseURL string        `mapstructure:"database_url"`
}

// AnalysisConfig holds input limits and batch settings
type AnalysisConfig struct {
	MinResumeChars   int `mapstructure:"min_resume_chars" validate:"gte=0"`
	MinJobChars      int `mapstructure:"min_job_chars" validate:"gte=0"`
	BatchConcurrency int `mapstructure:"batch_concurrency" validate:"gte=1,lte=64"`
	HeatmapLimit     int `mapstructure:"heatmap_limit" validate:"gte=0"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Provider:    "none",
			Timeout:     10 * time.Second,
			MaxAttempts: 3,
			Backoff:     500 * time.Millisecond,
			Cooldown:    30 * time.Second,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			TTL:        time.Hour,
			MaxEntries: 1000,
		},
		Analysis: AnalysisConfig{
			MinResumeChars:   50,
			MinJobChars:      20,
			BatchConcurrency: 4,
			HeatmapLimit:     80,
		},
	}
}

// LoadConfig loads configuration from an optional YAML/JSON file plus environment.
// An empty path skips the file and uses defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyAPIKeyFallback()
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("embedding.provider", d.Embedding.Provider)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.api_key", d.Embedding.APIKey)
	v.SetDefault("embedding.base_url", d.Embedding.BaseURL)
	v.SetDefault("embedding.timeout", d.Embedding.Timeout)
	v.SetDefault("embedding.max_attempts", d.Embedding.MaxAttempts)
	v.SetDefault("embedding.backoff", d.Embedding.Backoff)
	v.SetDefault("embedding.cooldown", d.Embedding.Cooldown)
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.max_entries", d.Cache.MaxEntries)
	v.SetDefault("cache.redis_url", d.Cache.RedisURL)
	v.SetDefault("cache.database_url", d.Cache.DatabaseURL)
	v.SetDefault("analysis.min_resume_chars", d.Analysis.MinResumeChars)
	v.SetDefault("analysis.min_job_chars", d.Analysis.MinJobChars)
	v.SetDefault("analysis.batch_concurrency", d.Analysis.BatchConcurrency)
	v.SetDefault("analysis.heatmap_limit", d.Analysis.HeatmapLimit)
	v.SetDefault("metrics_file", d.MetricsFile)
}

// applyAPIKeyFallback reads the provider's conventional key variable when none is configured
func (c *Config) applyAPIKeyFallback() {
	if c.Embedding.APIKey != "" {
		return
	}
	switch c.Embedding.Provider {
	case "gemini":
		c.Embedding.APIKey = os.Getenv("GEMINI_API_KEY")
	case "openai":
		c.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// ValidationError describes one invalid configuration field
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error: '%s' %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

var validate = validator.New()

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed '%s' check (value: %v)", fe.Tag(), fe.Value()),
				Cause:   err,
			}
		}
		return &ValidationError{Message: err.Error(), Cause: err}
	}

	switch c.Cache.Backend {
	case "redis":
		if c.Cache.RedisURL == "" {
			return &ValidationError{Field: "cache.redis_url", Message: "is required for the redis backend"}
		}
	case "postgres":
		if c.Cache.DatabaseURL == "" {
			return &ValidationError{Field: "cache.database_url", Message: "is required for the postgres backend"}
		}
	}

	return nil
}
