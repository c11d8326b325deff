package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cacheadapter "github.com/SscSPs/cari_ledger/internal/adapters/cache"
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cari_ledger/internal/core/services"
	"github.com/SscSPs/cari_ledger/internal/handlers"
	"github.com/SscSPs/cari_ledger/internal/metrics"
	"github.com/SscSPs/cari_ledger/internal/middleware"
	"github.com/SscSPs/cari_ledger/internal/platform/config"
	"github.com/SscSPs/cari_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/cari_ledger/pkg/cache"
	"github.com/SscSPs/cari_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.3 init --dir ../.. --generalInfo cmd/ledger_backend/main.go --parseInternal --output ../docs --outputTypes go

// @title Cari Ledger API
// @version 1.0
// @description Account ledger backend: groups, accounts, movements and settings.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return err
	}

	var settingCache portsrepo.SettingCache
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			// The settings store works without its cache.
			logger.Warn("Redis unavailable, settings cache disabled", slog.String("error", err.Error()))
		} else {
			defer rdb.Close()
			settingCache = cacheadapter.NewRedisSettingCache(rdb, cfg.SettingsCacheTTL)
			logger.Info("Settings cache enabled", slog.String("ttl", cfg.SettingsCacheTTL.String()))
		}
	}

	var appMetrics *metrics.Metrics
	registry := prometheus.NewRegistry()
	if cfg.MetricsEnabled {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		if appMetrics, err = metrics.New(registry); err != nil {
			return err
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, settingCache, appMetrics)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	}
	r.Use(cors.New(corsConfig))

	if cfg.RateLimit != "" {
		limiterInstance, err := middleware.NewMemoryLimiter(cfg.RateLimit)
		if err != nil {
			return err
		}
		r.Use(middleware.RateLimit(limiterInstance))
	}

	if appMetrics != nil {
		r.Use(middleware.Metrics(appMetrics))
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, dbPool)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped.")
	return nil
}
