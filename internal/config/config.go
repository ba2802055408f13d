package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	AI         AIConfig
	MinIO      MinIOConfig
	Generation GenerationConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

// AIConfig configures the external generation provider
// (OpenAI-compatible chat completions + image endpoints).
type AIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	ImageModel     string
	TimeoutSeconds int // request timeout; policy, not hard-coded (0 = client default)
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// GenerationConfig tunes the generation lifecycle.
type GenerationConfig struct {
	PreviewTTLMinutes int // how long an unsaved preview survives
	DebounceMillis    int // change-feed coalescing window
	RequestsPerMinute int // per-user generation rate limit
	HistoryLimit      int // rows returned by list endpoints
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ContentStudio API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "contentstudio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),  // 15 minutes
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72), // 3 days
		},
		AI: AIConfig{
			APIKey:         getEnv("AI_API_KEY", ""),
			BaseURL:        getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
			Model:          getEnv("AI_MODEL", "gpt-4o-mini"),
			ImageModel:     getEnv("AI_IMAGE_MODEL", "dall-e-3"),
			TimeoutSeconds: getEnvInt("AI_TIMEOUT_SECONDS", 60),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "contentstudio"),
			UseSSL:    false,
		},
		Generation: GenerationConfig{
			PreviewTTLMinutes: getEnvInt("GEN_PREVIEW_TTL", 30),
			DebounceMillis:    getEnvInt("GEN_DEBOUNCE_MS", 250),
			RequestsPerMinute: getEnvInt("GEN_RATE_LIMIT", 20),
			HistoryLimit:      getEnvInt("GEN_HISTORY_LIMIT", 50),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that the config is usable
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.AI.APIKey == "" {
			return fmt.Errorf("AI_API_KEY must be set in production")
		}
	}

	if c.Generation.PreviewTTLMinutes < 1 {
		return fmt.Errorf("GEN_PREVIEW_TTL must be at least 1 minute")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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
