package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Solana RPC configuration
	Solana SolanaConfig

	// Redis configuration
	Redis RedisConfig

	// API server configuration
	API APIConfig

	// Analytics pipeline configuration
	Analytics AnalyticsConfig

	// Logging configuration
	Log LogConfig
}

// SolanaConfig holds Solana RPC connection settings
type SolanaConfig struct {
	RPCURL         string        `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	Commitment     string        `envconfig:"SOLANA_COMMITMENT" default:"confirmed"`
	RequestTimeout time.Duration `envconfig:"SOLANA_REQUEST_TIMEOUT" default:"60s"`
	MaxRetries     int           `envconfig:"SOLANA_MAX_RETRIES" default:"2"`
	RetryDelay     time.Duration `envconfig:"SOLANA_RETRY_DELAY" default:"500ms"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Host            string        `envconfig:"API_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"API_PORT" default:"8081"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    int           `envconfig:"API_RATE_LIMIT_RPS" default:"20"`
	CacheTTL        time.Duration `envconfig:"API_CACHE_TTL" default:"1h"`
}

// AnalyticsConfig holds wallet analytics pipeline settings
type AnalyticsConfig struct {
	BatchSize        int           `envconfig:"ANALYTICS_BATCH_SIZE" default:"5"`
	BatchDelay       time.Duration `envconfig:"ANALYTICS_BATCH_DELAY" default:"200ms"`
	CacheMaxAge      time.Duration `envconfig:"ANALYTICS_CACHE_MAX_AGE" default:"5m"`
	DefaultLimit     int           `envconfig:"ANALYTICS_DEFAULT_LIMIT" default:"20"`
	AnalyzeLimit     int           `envconfig:"ANALYTICS_ANALYZE_LIMIT" default:"50"`
	MaxLimit         int           `envconfig:"ANALYTICS_MAX_LIMIT" default:"1000"`
	RecentActivities int           `envconfig:"ANALYTICS_RECENT_ACTIVITIES" default:"10"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithEnvFile loads variables from a dotenv file, then the environment.
// Variables already set in the environment take precedence. A missing file is ignored.
func LoadWithEnvFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}
	return Load()
}

// DefaultAnalytics returns the analytics settings used when no environment is set
func DefaultAnalytics() AnalyticsConfig {
	return AnalyticsConfig{
		BatchSize:        5,
		BatchDelay:       200 * time.Millisecond,
		CacheMaxAge:      5 * time.Minute,
		DefaultLimit:     20,
		AnalyzeLimit:     50,
		MaxLimit:         1000,
		RecentActivities: 10,
	}
}
