package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds redis connection parameters
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoadRedisConfig loads redis configuration from environment variables
func LoadRedisConfig() (*RedisConfig, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, fmt.Errorf("redis environment variables not set (REDIS_ADDR, REDIS_PASSWORD, REDIS_DB)")
	}
	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
		db = v
	}
	return &RedisConfig{Addr: addr, Password: os.Getenv("REDIS_PASSWORD"), DB: db}, nil
}

// ConnectRedis opens a client and checks it answers PING
func ConnectRedis(ctx context.Context, cfg *RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to connect to redis at %s: %w", cfg.Addr, err)
	}
	log.Printf("INFO: Successfully connected to Redis at %s", cfg.Addr)
	return client, nil
}
