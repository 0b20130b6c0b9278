// Package config 從環境變數載入服務設定
package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPAddr      string
	StoreDriver   string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	LogLevel      string
	Debug         bool
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		StoreDriver:   getenv("STORE_DRIVER", DriverPostgres),
		DatabaseURL:   getenv("DATABASE_URL", ""),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		LogLevel:      getenv("LOG_LEVEL", "info"),
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("環境變數 DATABASE_URL 未設定")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("無效的 STORE_DRIVER: %q", cfg.StoreDriver)
	}

	db, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("無效的 REDIS_DB: %w", err)
	}
	cfg.RedisDB = db

	debug, err := strconv.ParseBool(getenv("DEBUG", "false"))
	if err != nil {
		return nil, fmt.Errorf("無效的 DEBUG: %w", err)
	}
	cfg.Debug = debug

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
