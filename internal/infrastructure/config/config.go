package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Backend BackendConfig
	Redis   RedisConfig
}

// SessionConfig controls the signed session cookie and the Redis-held
// session records.
type SessionConfig struct {
	// Secret signs the HS256 session cookie. Required.
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL, default=720h"`
}

// BackendConfig points at the service-order REST backend and carries the
// OAuth2 client credentials used for token issuance.
type BackendConfig struct {
	BaseURL      string        `env:"BACKEND_BASE_URL,      default=http://localhost:8081"`
	ClientID     string        `env:"BACKEND_CLIENT_ID,     default=myclientid"`
	ClientSecret string        `env:"BACKEND_CLIENT_SECRET, default=myclientsecret"`
	Timeout      time.Duration `env:"BACKEND_TIMEOUT,       default=15s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("config: SESSION_SECRET is required")
	}
	return &cfg, nil
}
