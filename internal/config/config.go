package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port       int
	LogLevel   string
	LogFormat  string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	APIKey     string // API key for the admin surface

	OracleBaseURL  string        // price oracle endpoint
	OracleTimeout  time.Duration // per-request timeout for oracle calls
	QuoteTTL       time.Duration // how long a cached quote stays fresh
	QuoteStaleMax  time.Duration // how stale a quote may be served on oracle failure
	QuoteRefresh   time.Duration // background refresh interval for catalog currencies
	ReferenceFiat  string        // unit catalog prices are denominated in
	TrustedProxies []string      // proxies whose X-Forwarded-For is believed
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "cryptofarm"),
		APIKey:        getEnv("API_KEY", ""),
		OracleBaseURL: getEnv("ORACLE_BASE_URL", "https://min-api.cryptocompare.com"),
		ReferenceFiat: getEnv("REFERENCE_FIAT", "EUR"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cfg.OracleTimeout, err = getDuration("ORACLE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.QuoteTTL, err = getDuration("QUOTE_TTL", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.QuoteStaleMax, err = getDuration("QUOTE_STALE_MAX", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.QuoteRefresh, err = getDuration("QUOTE_REFRESH", 45*time.Second)
	if err != nil {
		return nil, err
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			cfg.TrustedProxies = append(cfg.TrustedProxies, strings.TrimSpace(p))
		}
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
