package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Optimizer OptimizerConfig
	Store     StoreConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OptimizerConfig holds basket optimizer tuning
type OptimizerConfig struct {
	SolveTimeout      time.Duration `mapstructure:"solve_timeout"`
	MinProteinVariety int           `mapstructure:"min_protein_variety"`
	MaxPerItemUnits   float64       `mapstructure:"max_per_item_units"`
}

// StoreConfig holds quote store configuration
type StoreConfig struct {
	QuoteFreshness time.Duration `mapstructure:"quote_freshness"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per second
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/basketwise/")

	// Environment variable settings
	v.SetEnvPrefix("BASKETWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
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

	// Optimizer defaults
	v.SetDefault("optimizer.solve_timeout", "10s")
	v.SetDefault("optimizer.min_protein_variety", 3)
	v.SetDefault("optimizer.max_per_item_units", 2.0)

	// Quote store defaults: scraped prices go stale after a week
	v.SetDefault("store.quote_freshness", "168h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 10)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Optimizer.SolveTimeout <= 0 {
		return fmt.Errorf("optimizer solve timeout must be positive, got: %s", config.Optimizer.SolveTimeout)
	}

	if config.Optimizer.MaxPerItemUnits <= 0 {
		return fmt.Errorf("optimizer max per-item units must be positive, got: %v", config.Optimizer.MaxPerItemUnits)
	}

	if config.Store.QuoteFreshness <= 0 {
		return fmt.Errorf("quote freshness window must be positive, got: %s", config.Store.QuoteFreshness)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
