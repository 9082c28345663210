package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/recipebox/backend/internal/logger"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Recipes   RecipesConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RecipesConfig holds recipe list configuration
type RecipesConfig struct {
	ListURL    string `mapstructure:"list_url"`
	PageLength int    `mapstructure:"page_length"`
}

// CacheConfig holds image cache configuration
type CacheConfig struct {
	Type             string `mapstructure:"type"` // "disk" or "memory"
	Dir              string `mapstructure:"dir"`
	ByteLimit        int64  `mapstructure:"byte_limit"`
	CountLimit       int    `mapstructure:"count_limit"`
	StrictAccounting bool   `mapstructure:"strict_accounting"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from environment variables and config files.
// A non-empty configFile replaces the default search paths.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/recipebox/")
	}

	// Environment variable settings
	v.SetEnvPrefix("RECIPEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
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

// LoadEnvFile loads variables from a .env file in the working directory.
// A missing file is not an error; variables already set are kept.
func LoadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// DefaultCacheDir returns the image cache directory under the user cache dir.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "recipebox", "ImageCache")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Recipe defaults
	v.SetDefault("recipes.list_url", "https://d3jbb8n5wk0qxi.cloudfront.net/recipes.json")
	v.SetDefault("recipes.page_length", 10)

	// Cache defaults
	v.SetDefault("cache.type", "disk")
	v.SetDefault("cache.dir", DefaultCacheDir())
	v.SetDefault("cache.byte_limit", 5*1024*1024)
	v.SetDefault("cache.count_limit", 100)
	v.SetDefault("cache.strict_accounting", false)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Recipes.ListURL == "" {
		return fmt.Errorf("recipe list URL is required (set RECIPEBOX_RECIPES_LIST_URL)")
	}

	if config.Recipes.PageLength <= 0 {
		return fmt.Errorf("page length must be positive, got: %d", config.Recipes.PageLength)
	}

	if config.Cache.Type != "disk" && config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'disk' or 'memory', got: %s", config.Cache.Type)
	}

	if config.Cache.Dir == "" {
		return fmt.Errorf("cache directory is required (set RECIPEBOX_CACHE_DIR)")
	}

	if config.Cache.ByteLimit <= 0 || config.Cache.CountLimit <= 0 {
		return fmt.Errorf("cache limits must be positive, got: %d bytes, %d entries",
			config.Cache.ByteLimit, config.Cache.CountLimit)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("rate limit must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if _, err := logger.ParseLevel(config.Log.Level); err != nil && !strings.EqualFold(config.Log.Level, "off") {
		return err
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got: %s", config.Log.Format)
	}

	return nil
}
