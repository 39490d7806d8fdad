package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/labstack/gommon/random"
)

// Config is assembled from environment variables; a TOML file named by
// CONFIG_FILE, when present, overrides the environment.
type Config struct {
	DatabaseURL string `toml:"database_url"`
	JWTSecret   string `toml:"jwt_secret"`
	Port        int    `toml:"port"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	MinioEndpoint  string `toml:"minio_endpoint"`
	MinioAccessKey string `toml:"minio_access_key"`
	MinioSecretKey string `toml:"minio_secret_key"`
	MinioUseSSL    bool   `toml:"minio_use_ssl"`
	ImageBucket    string `toml:"image_bucket"`

	// JWKS endpoint of the payment provider used to verify webhook events.
	// Webhooks are rejected when unset.
	PaymentJWKSURL string `toml:"payment_jwks_url"`
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Port:           envInt("PORT", 8080),
		RedisAddr:      envDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		MinioEndpoint:  envDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: envDefault("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: envDefault("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		ImageBucket:    envDefault("IMAGE_BUCKET", "menu-images"),
		PaymentJWKSURL: os.Getenv("PAYMENT_JWKS_URL"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(48)
		log.Println("WARN: JWT_SECRET not set, generated an ephemeral signing secret; staff tokens will not survive a restart")
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
