package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=3000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
}

// BackendConfig points at the remote jobber REST API the gateway fronts.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

// SessionConfig controls the portal's own session cookie and persistence.
type SessionConfig struct {
	// Secret signs the HS256 session cookie. Required outside development.
	Secret string        `env:"SESSION_SECRET, default=dev-only-secret"`
	TTL    time.Duration `env:"SESSION_TTL,    default=24h"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR, default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,      default=0"`
	TLS      bool          `env:"REDIS_TLS,     default=false"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT, default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
