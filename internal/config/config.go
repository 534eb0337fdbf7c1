package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port      string
	Env       string
	RoomsFile string
	UploadDir string

	// Rate limiting for the REST surface.
	RateLimitRPS   int
	RateLimitBurst int
}

// Load reads configuration from environment variables. In development it
// loads from a .env file if present. Everything has a default: the server
// keeps no required external services.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "5000"),
		Env:            getEnv("ENV", "development"),
		RoomsFile:      getEnv("ROOMS_FILE", "rooms.json"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
