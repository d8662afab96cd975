package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	TallySpec string `mapstructure:"SCHEDULER_TALLY_SPEC"`
	Timezone  string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

// BusinessConfig carries the weekly collection table. TierAmounts is a
// comma-separated list of per-week amounts, highest tier first; each tier
// repeats for WeeksPerTier consecutive weeks.
type BusinessConfig struct {
	CollectionWeeks int    `mapstructure:"COLLECTION_WEEKS"`
	WeeksPerTier    int    `mapstructure:"WEEKS_PER_TIER"`
	TierAmounts     string `mapstructure:"WEEKLY_TIER_AMOUNTS"`
	TallyCacheTTL   string `mapstructure:"TALLY_CACHE_TTL"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("COLLECTION_WEEKS", 12)
	viper.SetDefault("WEEKS_PER_TIER", 4)
	viper.SetDefault("WEEKLY_TIER_AMOUNTS", "1100,1080,1070")
	viper.SetDefault("TALLY_CACHE_TTL", "5m")
	viper.SetDefault("SCHEDULER_TALLY_SPEC", "0 0 20 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.CollectionWeeks <= 0 {
		return fmt.Errorf("COLLECTION_WEEKS must be greater than 0")
	}

	if c.Business.WeeksPerTier <= 0 {
		return fmt.Errorf("WEEKS_PER_TIER must be greater than 0")
	}

	if _, err := c.Business.AmountTable(); err != nil {
		return err
	}

	if _, err := time.ParseDuration(c.Business.TallyCacheTTL); err != nil {
		return fmt.Errorf("TALLY_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// AmountTable expands the tier configuration into the per-week expected
// amounts, one entry per collection week. Tiers must be positive and
// strictly decreasing, and must cover the configured weeks exactly.
func (b *BusinessConfig) AmountTable() ([]int64, error) {
	parts := strings.Split(b.TierAmounts, ",")

	tiers := make([]int64, 0, len(parts))
	for _, p := range parts {
		amount, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("WEEKLY_TIER_AMOUNTS entry %q is not an integer", p)
		}
		if amount <= 0 {
			return nil, fmt.Errorf("WEEKLY_TIER_AMOUNTS entries must be positive, got %d", amount)
		}
		tiers = append(tiers, amount)
	}

	for i := 1; i < len(tiers); i++ {
		if tiers[i] >= tiers[i-1] {
			return nil, fmt.Errorf("WEEKLY_TIER_AMOUNTS must be strictly decreasing")
		}
	}

	if len(tiers)*b.WeeksPerTier != b.CollectionWeeks {
		return nil, fmt.Errorf("WEEKLY_TIER_AMOUNTS: %d tiers x %d weeks does not cover %d collection weeks",
			len(tiers), b.WeeksPerTier, b.CollectionWeeks)
	}

	table := make([]int64, 0, b.CollectionWeeks)
	for _, amount := range tiers {
		for w := 0; w < b.WeeksPerTier; w++ {
			table = append(table, amount)
		}
	}

	return table, nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetTallyCacheTTL returns the daily tally cache TTL as duration
func (c *Config) GetTallyCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Business.TallyCacheTTL)
	return ttl
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
