// @title        Jobber Portal Gateway API
// @version      1.0
// @description  Browser-facing gateway for the jobber job portal.
// @BasePath     /
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobber/portal-gateway/internal/api"
	"github.com/jobber/portal-gateway/internal/api/metrics"
	"github.com/jobber/portal-gateway/internal/infrastructure/config"
	redisdb "github.com/jobber/portal-gateway/internal/infrastructure/db/redis"
	"github.com/jobber/portal-gateway/internal/infrastructure/jobber"
	"github.com/jobber/portal-gateway/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	backend := jobber.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log, func(endpoint, status string, seconds float64) {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint, status).Observe(seconds)
	})

	e := api.NewRouter(cfg, rdb, backend, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()

	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("portal gateway started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}
}
