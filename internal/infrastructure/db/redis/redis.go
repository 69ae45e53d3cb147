package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config carries the connection settings the gateway reads from the
// environment. TLS and Password cover managed redis offerings; both stay
// zero-valued for a local instance.
type Config struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	Timeout  time.Duration
}

// Connect opens a client and verifies connectivity with a bounded ping. The
// session store and the apply guard both live here, so a gateway that cannot
// reach redis must not start serving.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(options(cfg))

	pingCtx, cancel := context.WithTimeout(ctx, timeout(cfg))
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

func options(cfg Config) *redis.Options {
	opts := &redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout(cfg),
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}

func timeout(cfg Config) time.Duration {
	if cfg.Timeout <= 0 {
		return defaultTimeout
	}
	return cfg.Timeout
}
