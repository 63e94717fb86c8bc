package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kendall-kelly/coffee-shop-api/logging"
)

const (
	// OrderStoreMemory keeps session logs in a map guarded by a mutex
	OrderStoreMemory = "memory"
	// OrderStoreSQLite keeps session logs in an in-memory SQLite database
	OrderStoreSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Port                 string
	GoEnv                string
	LogLevel             string
	LogFormat            string
	OrderStore           string
	SQLiteDSN            string
	CORSAllowedOrigins   []string
	SessionCookieName    string
	SessionMaxAge        int
	SessionSweepInterval time.Duration // how often idle session logs are expired
}

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			logging.Debug().Msg("No .env file found, using system environment variables")
		}
	} else {
		logging.Info().Str("file", envFile).Msg("Loaded configuration")
	}

	defaultFormat := "json"
	if env == "development" {
		defaultFormat = "console"
	}

	maxAge, err := strconv.Atoi(getEnv("SESSION_MAX_AGE", "86400"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_MAX_AGE must be a number of seconds: %w", err)
	}

	sweepInterval, err := time.ParseDuration(getEnv("SESSION_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_SWEEP_INTERVAL must be a duration such as 1m: %w", err)
	}

	config := &Config{
		Port:                 getEnv("PORT", "8080"),
		GoEnv:                getEnv("GO_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", defaultFormat),
		OrderStore:           getEnv("ORDER_STORE", OrderStoreMemory),
		SQLiteDSN:            getEnv("SQLITE_DSN", "file::memory:?_loc=auto"),
		CORSAllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		SessionCookieName:    getEnv("SESSION_COOKIE_NAME", "coffee_session"),
		SessionMaxAge:        maxAge,
		SessionSweepInterval: sweepInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that configuration values are usable
func (c *Config) Validate() error {
	switch c.OrderStore {
	case OrderStoreMemory, OrderStoreSQLite:
	default:
		return fmt.Errorf("ORDER_STORE must be %q or %q, got %q", OrderStoreMemory, OrderStoreSQLite, c.OrderStore)
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"json\" or \"console\", got %q", c.LogFormat)
	}

	if c.SessionCookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME is required")
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}

	for _, origin := range c.CORSAllowedOrigins {
		if err := validateOrigin(origin); err != nil {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS: %w", err)
		}
	}
	return nil
}

// validateOrigin accepts a bare http(s) origin such as https://shop.example.com
func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("origin %q must start with http:// or https:// and name a host", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("origin %q must not carry a path, query or credentials", origin)
	}
	return nil
}

// SessionTTL is how long a session lives after its last request
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionMaxAge) * time.Second
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma separated list, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
