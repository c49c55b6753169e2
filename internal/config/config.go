package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	DBPath                string
	DBDriver              string
	RedisAddr             string
	CacheEnabled          bool
	GRPCPort              int
	GRPCReflectionEnabled bool
	HTTPAddr              string
	JWTSecret             string
	SessionTTL            time.Duration
	AdminUserIDs          []string
	CacheTTL              time.Duration
	ActivityWindow        int
}

const devJWTSecret = "dev-secret-change-me"

// ErrMissingJWTSecret is returned when a production config has no signing secret of its own.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when APP_ENV=production")

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	port, err := strconv.Atoi(getEnv("GRPC_PORT", "50051"))
	if err != nil {
		port = 50051
	}

	reflection, err := strconv.ParseBool(getEnv("GRPC_REFLECTION_ENABLED", "false"))
	if err != nil {
		reflection = false
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		cacheEnabled = true
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		sessionTTL = 24 * time.Hour
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "10m"))
	if err != nil {
		cacheTTL = 10 * time.Minute
	}

	window, err := strconv.Atoi(getEnv("ACTIVITY_WINDOW", "5"))
	if err != nil || window <= 0 {
		window = 5
	}

	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		DBPath:                getEnv("DB_PATH", "./data/simre.db"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		CacheEnabled:          cacheEnabled,
		GRPCPort:              port,
		GRPCReflectionEnabled: reflection,
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		JWTSecret:             getEnv("JWT_SECRET", devJWTSecret),
		SessionTTL:            sessionTTL,
		AdminUserIDs:          splitList(os.Getenv("ADMIN_USER_IDS")),
		CacheTTL:              cacheTTL,
		ActivityWindow:        window,
	}

	if cfg.AppEnv == "production" && cfg.JWTSecret == devJWTSecret {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
