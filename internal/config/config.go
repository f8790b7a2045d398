package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// insecureDevSecret signs session cookies when SESSION_SECRET is unset
// outside production. Never used in production.
const insecureDevSecret = "cassette-dev-secret"

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPPort    int      `env:"HTTP_PORT" default:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Sessions
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" default:"24h"`

	// Database; empty selects the in-memory store
	DatabaseURL string `env:"DATABASE_URL"`

	// Redis cache for AI recommendations; empty disables caching
	RedisURL string `env:"REDIS_URL"`
	CacheTTL int    `env:"CACHE_TTL" default:"3600"`

	// Generative language API; empty key disables all AI features
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	GeminiModel  string        `env:"GEMINI_MODEL" default:"gemini-pro"`
	AITimeout    time.Duration `env:"AI_TIMEOUT" default:"30s"`
}

// LoadConfig loads configuration from the environment, reading a .env file
// first when one is present.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		// No .env file is fine; system env vars still apply.
		log.Printf("no .env file loaded: %v", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.SessionSecret, "SESSION_SECRET", ""); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.SessionTTL, "SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DatabaseURL, "DATABASE_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.CacheTTL, "CACHE_TTL", 3600); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.GeminiAPIKey, "GEMINI_API_KEY", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.GeminiModel, "GEMINI_MODEL", "gemini-pro"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AITimeout, "AI_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if config.SessionSecret == "" {
		if config.IsProduction() {
			// Sessions are volatile per process anyway, so a random
			// per-process secret keeps the server up without an insecure
			// constant. Existing cookies become invalid on restart.
			config.SessionSecret = randomSecret()
			log.Println("warning: SESSION_SECRET not set; generated a random per-process secret")
		} else {
			config.SessionSecret = insecureDevSecret
			log.Println("warning: SESSION_SECRET not set; using insecure development default")
		}
	}
	if config.GeminiAPIKey == "" {
		log.Println("warning: GEMINI_API_KEY not set; AI features are disabled")
	}

	return config, nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; nothing
		// sensible to fall back to.
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// Validate performs validation on the loaded configuration.
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}
	if c.CacheTTL < 0 {
		errors = append(errors, "CACHE_TTL must not be negative")
	}
	if c.AITimeout <= 0 {
		errors = append(errors, "AI_TIMEOUT must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}
