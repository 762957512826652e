// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL master data (optional)
	PostgresURI string

	// Telegram
	TelegramToken string

	// Flight status API
	FlightAPIBaseURL string
	FlightAPIKey     string
	FlightAPITimeout time.Duration

	// Polling
	PollInterval     time.Duration
	PollInitialDelay time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", ""),
		MongoDB:  getEnv("MONGO_DB", "flightwatch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		TelegramToken: getEnv("BOT_TOKEN", ""),

		FlightAPIBaseURL: getEnv("FLIGHTAPI_BASE_URL", "https://api.flightapi.io"),
		FlightAPIKey:     getEnv("FLIGHTAPI_KEY", ""),
		FlightAPITimeout: time.Duration(getEnvAsInt("FLIGHTAPI_TIMEOUT", 30)) * time.Second,

		PollInterval:     time.Duration(getEnvAsInt("FLIGHTAPI_POLL_INTERVAL", 3600)) * time.Second,
		PollInitialDelay: time.Duration(getEnvAsInt("FLIGHTAPI_POLL_INITIAL_DELAY", 10)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
