package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	ProductAPI ProductAPIConfig `mapstructure:"product_api"`
	Supabase   SupabaseConfig
	Analyzer   AnalyzerConfig
	OCR        OCRConfig
	LLM        LLMConfig
	Cache      CacheConfig
	Matching   MatchingConfig
	RateLimit  RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ProductAPIConfig holds Open Food Facts API configuration
type ProductAPIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
}

// SupabaseConfig holds the profile store configuration
type SupabaseConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// AnalyzerConfig holds the remote analysis service configuration
type AnalyzerConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// OCRConfig holds the OCR API configuration
type OCRConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// LLMConfig holds the Ollama endpoint configuration
type LLMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type       string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL   string        `mapstructure:"redis_url"`
	TTL        time.Duration `mapstructure:"ttl"`
	ProfileTTL time.Duration `mapstructure:"profile_ttl"`
}

// MatchingConfig holds allergen matching configuration
type MatchingConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	MinTokenLength      int     `mapstructure:"min_token_length"`
	EnableDebugLogging  bool    `mapstructure:"enable_debug_logging"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scansafe/")

	v.SetEnvPrefix("SCANSAFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Product API defaults
	v.SetDefault("product_api.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("product_api.user_agent", "ScanSafe/1.0 (scansafe-backend)")

	// Optional services default to unset; empty defaults keep the env
	// bindings visible to Unmarshal
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.api_key", "")
	v.SetDefault("analyzer.base_url", "")

	// LLM defaults
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", "mistral:7b")

	// OCR defaults
	v.SetDefault("ocr.base_url", "https://api.ocr.space")
	v.SetDefault("ocr.api_key", "")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.profile_ttl", "720h")

	// Matching defaults
	v.SetDefault("matching.similarity_threshold", 0.7)
	v.SetDefault("matching.min_token_length", 3)
	v.SetDefault("matching.enable_debug_logging", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.ProductAPI.BaseURL == "" {
		return fmt.Errorf("product API base URL is required (set SCANSAFE_PRODUCT_API_BASE_URL)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Matching.SimilarityThreshold < 0 || config.Matching.SimilarityThreshold > 1 {
		return fmt.Errorf("matching similarity threshold must be in [0,1], got: %v", config.Matching.SimilarityThreshold)
	}

	if config.Supabase.URL != "" && config.Supabase.APIKey == "" {
		return fmt.Errorf("Supabase API key is required when a Supabase URL is set")
	}

	return nil
}
