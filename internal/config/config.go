package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the portal configuration shared by the server and portalctl
type Config struct {
	ServerPort         string
	StoreBackend       string
	JWTSecret          string
	JWTExpirationHours int64
	AlertsURL          string
	AlertsTimeout      time.Duration
	LoginRedirectDelay time.Duration
	DB                 *DBConfig
	Redis              *RedisConfig
}

// Load reads configuration from environment variables. The JWT secret is only
// enforced when requireSecret is set, since portalctl never issues tokens.
func Load(requireSecret bool) (*Config, error) {
	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		StoreBackend:       getEnv("STORE_BACKEND", BackendMemory),
		JWTSecret:          os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: getInt("JWT_EXPIRATION_HOURS", 24),
		AlertsURL:          os.Getenv("ALERTS_URL"),
		AlertsTimeout:      time.Duration(getInt("ALERTS_TIMEOUT_SECONDS", 5)) * time.Second,
		LoginRedirectDelay: time.Duration(getInt("LOGIN_REDIRECT_DELAY_MS", 800)) * time.Millisecond,
	}

	if requireSecret && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	var err error
	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DB, err = LoadDBConfig(); err != nil {
			return nil, err
		}
	case BackendRedis:
		if cfg.Redis, err = LoadRedisConfig(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want memory, postgres or redis)", cfg.StoreBackend)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		log.Printf("WARN: Invalid %s %q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return v
}
