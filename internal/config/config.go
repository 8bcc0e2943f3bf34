package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from configs/.env and the environment.
type Config struct {
	Port                 string
	GinMode              string
	DatabaseURL          string
	RedisAddress         string
	JWTSecret            []byte
	LogLevel             string
	AllowedOrigins       []string
	PurchaseNumberOffset int64
}

// Load reads configs/.env when present and falls back to defaults for anything unset.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/.env"
	}
	// a missing file is fine, the environment may carry everything
	_ = godotenv.Load(path)

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		GinMode:      os.Getenv("GIN_MODE"),
		RedisAddress: os.Getenv("REDIS_ADDRESS"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS",
			"http://localhost:5173,http://127.0.0.1:5173,http://localhost:5174")),
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "postgres://" + getEnv("DB_USER", "postgres") + ":" + getEnv("DB_PASSWORD", "postgres") +
			"@" + getEnv("DB_HOST", "localhost") + ":" + getEnv("DB_PORT", "5432") +
			"/" + getEnv("DB_NAME", "postgres") + "?sslmode=" + getEnv("DB_SSLMODE", "disable")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if cfg.GinMode == "release" {
			return nil, fmt.Errorf("JWT_SECRET is required in release mode")
		}
		secret = "default_super_secret_key"
	}
	cfg.JWTSecret = []byte(secret)

	offset, err := strconv.ParseInt(getEnv("PURCHASE_NUMBER_OFFSET", "1000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PURCHASE_NUMBER_OFFSET: %w", err)
	}
	cfg.PurchaseNumberOffset = offset

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
