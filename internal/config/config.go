package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Twilio   TwilioConfig
	Groq     GroqConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Calls    CallsConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// TwilioConfig holds telephony account settings
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// GroqConfig holds LLM provider settings
type GroqConfig struct {
	APIKey string
	Model  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds call-session and rate-limit store settings.
// Redis is optional; the service degrades when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CallsConfig holds call-flow configuration
type CallsConfig struct {
	// PublicURL is the externally reachable base URL Twilio uses for
	// webhook callbacks (e.g. an ngrok tunnel in development).
	PublicURL string
	// RateLimit is the maximum outbound calls per phone number per hour
	RateLimit int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port  int
	Debug bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
	File  string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load .env in non-production environments; a missing file is fine
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{}

	// Twilio configuration
	var err error
	if cfg.Twilio.AccountSID, err = requireEnv("TWILIO_ACCOUNT_SID"); err != nil {
		return nil, err
	}
	if cfg.Twilio.AuthToken, err = requireEnv("TWILIO_AUTH_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.Twilio.PhoneNumber, err = requireEnv("TWILIO_PHONE_NUMBER"); err != nil {
		return nil, err
	}

	// Groq configuration
	if cfg.Groq.APIKey, err = requireEnv("GROQ_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Groq.Model = getEnvWithDefault("GROQ_MODEL", "llama3-70b-8192")

	// Database configuration
	if cfg.Database.URL, err = requireEnv("DATABASE_URL"); err != nil {
		return nil, err
	}

	// Redis configuration (optional)
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	redisDB := getEnvWithDefault("REDIS_DB", "0")
	cfg.Redis.DB, err = strconv.Atoi(redisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
	}

	// Call-flow configuration
	cfg.Calls.PublicURL = strings.TrimSuffix(os.Getenv("PUBLIC_URL"), "/")
	rateLimit := getEnvWithDefault("CALL_RATE_LIMIT", "3")
	cfg.Calls.RateLimit, err = strconv.Atoi(rateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CALL_RATE_LIMIT: %w", err)
	}

	// Server configuration
	serverPort := getEnvWithDefault("PORT", "5001")
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PORT: %w", err)
	}
	cfg.Server.Debug = strings.EqualFold(getEnvWithDefault("DEBUG", "true"), "true")

	// Logging configuration
	cfg.Logging.Level = getEnvWithDefault("LOG_LEVEL", "INFO")
	cfg.Logging.File = getEnvWithDefault("LOG_FILE", "call_log.txt")

	return cfg, nil
}

// DatabaseHost returns the host portion of the database URL, safe to expose
// on status endpoints without leaking credentials.
func (c *DatabaseConfig) DatabaseHost() string {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return "configured"
	}
	return u.Host
}

// MaskedAccountSID returns the first characters of the Twilio account SID
// for display purposes.
func (c *TwilioConfig) MaskedAccountSID() string {
	if len(c.AccountSID) <= 6 {
		return c.AccountSID
	}
	return c.AccountSID[:6] + "..."
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
