package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aaravmahajanofficial/entity-api/internal/api"
	"github.com/aaravmahajanofficial/entity-api/internal/authz"
	"github.com/aaravmahajanofficial/entity-api/internal/cache"
	"github.com/aaravmahajanofficial/entity-api/internal/config"
	"github.com/aaravmahajanofficial/entity-api/internal/health"
	repository "github.com/aaravmahajanofficial/entity-api/internal/repositories"
	"github.com/aaravmahajanofficial/entity-api/internal/tracing"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Otel, cfg.Env, api.Version)
	if err != nil {
		slog.Error("❌ Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	db, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	entityCache := cache.NewBreakerCache(cache.NewRedisCache(redisClient, &cfg.Cache), &cfg.Cache)
	defer entityCache.Close()

	enforcer, err := authz.NewEnforcer(&cfg.Authz)
	if err != nil {
		slog.Error("❌ Error loading the authorization policy", "error", err.Error())
		os.Exit(1)
	}

	healthChecker, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: db.SQL}, api.Version)
	if err != nil {
		slog.Error("❌ Error creating the health checker", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", api.Version))

	// Setup router
	handler, err := api.NewRouter(&api.Dependencies{
		Config:      cfg,
		DB:          db.Gorm,
		Cache:       entityCache,
		Decisions:   enforcer,
		RateLimiter: repository.NewRateLimitRepo(redisClient, &cfg.RateConfig),
		Health:      healthChecker.Handler(),
	})
	if err != nil {
		slog.Error("❌ Error building the router", "error", err.Error())
		os.Exit(1)
	}

	// Setup http server
	server := http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
