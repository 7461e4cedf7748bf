package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Market data feed
	Feed FeedConfig

	// Risk engine defaults
	Risk RiskConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool

	// Price history cache TTL (키: history:{symbol}:{period})
	HistoryTTL time.Duration
	// Current quote cache TTL
	QuoteTTL time.Duration
}

// FeedConfig holds the market data feed configuration
type FeedConfig struct {
	// Stooq daily history CSV endpoint
	BaseURL string
	// Quote page base URL (goquery fallback용)
	QuoteURL string
	// Outbound requests per second toward the feed
	RateLimit float64
	Timeout   time.Duration
}

// RiskConfig holds risk engine defaults used by the API and CLI
type RiskConfig struct {
	// Annual risk-free rate used for Sharpe when the caller omits one
	RiskFreeRate float64
	// Default Monte Carlo horizon/paths (경계값은 엔진에서 검증)
	SimulationDays  int
	SimulationPaths int
	// Benchmark symbol for beta
	BenchmarkSymbol string
	// Symbols refreshed by the scheduler
	Watchlist []string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:       getEnv("REDIS_HOST", "localhost"),
			Port:       getEnv("REDIS_PORT", "6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			Enabled:    getEnvAsBool("REDIS_ENABLED", true),
			HistoryTTL: getEnvAsDuration("CACHE_HISTORY_TTL", "1h"),
			QuoteTTL:   getEnvAsDuration("CACHE_QUOTE_TTL", "1m"),
		},

		// Market data feed
		Feed: FeedConfig{
			BaseURL:   getEnv("FEED_BASE_URL", "https://stooq.com/q/d/l"),
			QuoteURL:  getEnv("FEED_QUOTE_URL", "https://stooq.com/q"),
			RateLimit: getEnvAsFloat("FEED_RATE_LIMIT", 5),
			Timeout:   getEnvAsDuration("FEED_TIMEOUT", "30s"),
		},

		// Risk engine defaults
		Risk: RiskConfig{
			RiskFreeRate:    getEnvAsFloat("RISK_FREE_RATE", 0.04),
			SimulationDays:  getEnvAsInt("SIMULATION_DAYS", 252),
			SimulationPaths: getEnvAsInt("SIMULATION_PATHS", 500),
			BenchmarkSymbol: getEnv("BENCHMARK_SYMBOL", "SPY"),
			Watchlist:       getEnvAsSlice("WATCHLIST", []string{"AAPL", "GOOGL", "MSFT", "TSLA", "AMZN"}),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Feed.RateLimit <= 0 {
		return fmt.Errorf("FEED_RATE_LIMIT must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
