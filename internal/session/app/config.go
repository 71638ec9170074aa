package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AuthSecret string // Required: HS256 secret shared with the identity service
	AuthIssuer string // Optional: expected issuer claim (default: nestnote-auth)

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./session.db)
	InviteTTL            time.Duration // Optional: how long a pending invite stays acceptable (default: 48h)
	WebBase              string        // Optional: public web fallback base URL for invite links
	NotifyWebhook        string        // Optional: URL of the notification dispatch gateway
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Invite expiry sweep interval (default: 15m)
}

func LoadConfig() Config {
	cfg := Config{
		AuthSecret:           os.Getenv("SESSION_AUTH_SECRET"),
		AuthIssuer:           getEnvOrDefault("SESSION_AUTH_ISSUER", "nestnote-auth"),
		DatabaseFile:         getEnvOrDefault("SESSION_DATABASE_FILE", "session.db"),
		InviteTTL:            getEnvDurationOrDefault("SESSION_INVITE_TTL", 48*time.Hour),
		WebBase:              os.Getenv("SESSION_WEB_BASE"), // Empty falls back to the default host
		NotifyWebhook:        os.Getenv("SESSION_NOTIFY_WEBHOOK"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 15*time.Minute),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
