package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/liveboard/pkg/app"
	"github.com/ghuser/liveboard/pkg/cache"
	"github.com/ghuser/liveboard/pkg/config"
	"github.com/ghuser/liveboard/pkg/database"
	"github.com/ghuser/liveboard/pkg/events"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/logger"
	"github.com/ghuser/liveboard/pkg/realtime"
	"github.com/ghuser/liveboard/pkg/telemetry"
	foodApi "github.com/ghuser/liveboard/services/food/application/api"
	projectApi "github.com/ghuser/liveboard/services/project/application/api"
	userApi "github.com/ghuser/liveboard/services/user/application/api"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional — log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	// Infrastructure: the memory backend runs with no database, Redis, or
	// event bus at all — nil fields in Application switch the services to
	// in-process stores.
	var (
		pool        *database.Database
		eventBus    *events.Bus
		redisClient *cache.RedisClient
	)
	if cfg.StoreBackend == config.StorePostgres {
		pool, err = database.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
		}
		defer pool.Close()
		log.Info("database pool connected")

		eventBus, err = events.NewBus(cfg, log)
		if err != nil {
			log.Error("failed to setup event bus", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer eventBus.Close() //nolint:errcheck

		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
	} else {
		log.Info("running with in-memory stores", "seed_data", cfg.SeedData)
	}

	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()

	var hub *realtime.Hub
	if cfg.RealtimeEnabled {
		hub = realtime.NewHub(log)
		go hub.Run(hubCtx)
	}

	appConfig := &app.Application{
		Cfg:      cfg,
		Logger:   log,
		Db:       pool,
		EventBus: eventBus,
		Redis:    redisClient,
		Hub:      hub,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httpx.OK(w, map[string]any{
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
			"endpoints": map[string]string{
				"projects": "/api/projects",
				"food":     "/api/food",
				"users":    "/api/users",
				"health":   "/health",
				"ws":       "/ws",
			},
		})
	})
	r.Get("/health", httpx.HealthHandler(healthChecks(appConfig)))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	if hub != nil {
		r.Get("/ws", hub.ServeWS)
	}
	if cfg.StaticDir != "" {
		fs := http.StripPrefix("/views/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.Get("/views/*", fs.ServeHTTP)
	}
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	cancelHub()

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server stopped")
}

// healthChecks wires the optional infrastructure into the health endpoint.
// Nil interface fields report as "disabled".
func healthChecks(a *app.Application) httpx.HealthChecks {
	checks := httpx.HealthChecks{}
	if a.Db != nil {
		checks.Database = a.Db
	}
	if a.Redis != nil {
		checks.Redis = a.Redis
	}
	if a.EventBus != nil {
		checks.EventBus = a.EventBus
	}
	return checks
}

// registerRoutes mounts every bounded context under /api.
func registerRoutes(r chi.Router, a *app.Application) {
	r.Get("/hello", func(w http.ResponseWriter, _ *http.Request) {
		httpx.OK(w, map[string]string{"message": "Hello from the API"})
	})
	projectApi.ProjectRoutes(r, a)
	foodApi.FoodRoutes(r, a)
	userApi.UserRoutes(r, a)
}
