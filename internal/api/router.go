package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/jobber/portal-gateway/docs"
	"github.com/jobber/portal-gateway/internal/api/handler"
	"github.com/jobber/portal-gateway/internal/api/metrics"
	apimiddleware "github.com/jobber/portal-gateway/internal/api/middleware"
	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
	"github.com/jobber/portal-gateway/internal/core/service"
	"github.com/jobber/portal-gateway/internal/infrastructure/config"
	redisdb "github.com/jobber/portal-gateway/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, backend ports.BackendClient, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	sessionRepo := redisdb.NewSessionRepository(rdb, cfg.Session.TTL)
	sessionStore := service.NewSessionService(sessionRepo, backend, log)
	sessionStore.Subscribe(observeSessionEvents)

	applyGuard := redisdb.NewApplyGuard(rdb)

	authService := service.NewAuthService(backend, sessionStore, log)
	dashboardService := service.NewDashboardService(backend, log)
	jobService := service.NewJobService(backend, applyGuard, log)

	authHandler := handler.NewAuthHandler(authService, cfg.Session.Secret, cfg.Session.TTL)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	jobHandler := handler.NewJobHandler(jobService)

	routeGuard := apimiddleware.Guard(cfg.Session.Secret, sessionStore)

	// --- Public routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.POST("/register", authHandler.Register)
	e.GET("/jobs", jobHandler.List)
	e.GET("/jobs/:id", jobHandler.Get)

	// --- Guarded routes ---
	guarded := e.Group("", routeGuard)
	guarded.GET("/dashboard", dashboardHandler.Overview)
	guarded.POST("/jobs", jobHandler.Create, apimiddleware.RequireRole(domain.RoleEmployer))
	guarded.POST("/jobs/:id/apply", jobHandler.Apply)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb, backend)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surface ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// observeSessionEvents feeds session state changes into the metrics package.
// Registered as a store subscriber so every mutation is counted exactly once,
// at the store's single notification point.
func observeSessionEvents(event ports.SessionEvent) {
	switch event.Kind {
	case "established":
		metrics.SessionsActive.Inc()
	case "cleared":
		metrics.SessionsActive.Dec()
	case "restored":
		metrics.SessionRestoresTotal.WithLabelValues("hit").Inc()
	case "corrupt":
		metrics.SessionRestoresTotal.WithLabelValues("corrupt").Inc()
	case "miss":
		metrics.SessionRestoresTotal.WithLabelValues("miss").Inc()
	}
}
