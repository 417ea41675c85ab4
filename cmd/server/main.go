package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/user/retailer-registry/internal/adapter/api"
	"github.com/user/retailer-registry/internal/adapter/api/middleware"
	"github.com/user/retailer-registry/internal/adapter/metrics"
	"github.com/user/retailer-registry/internal/adapter/repository/postgres"
	redisrepo "github.com/user/retailer-registry/internal/adapter/repository/redis"
	"github.com/user/retailer-registry/internal/domain"
	"github.com/user/retailer-registry/internal/pkg/config"
	"github.com/user/retailer-registry/internal/pkg/logger"
	"github.com/user/retailer-registry/internal/pkg/secret"
	"github.com/user/retailer-registry/internal/usecase"

	_ "github.com/lib/pq" // postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	m := metrics.NewRegistryMetrics()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// --- Repositories ---
	var directory domain.RetailerRepository = postgres.NewRetailerRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("could not connect to redis, retailer lookups will hit postgres directly", "error", err)
		}
		directory = redisrepo.NewRetailerCache(directory, redisClient, log, cfg.RetailerCacheTTL, m)
	}

	// --- Seed Admin Identity ---
	if cfg.AdminSeedUser != "" && cfg.AdminSeedPassword != "" {
		hash, err := secret.Hash(cfg.AdminSeedPassword)
		if err != nil {
			log.Error("failed to hash seed admin password", "error", err)
			os.Exit(1)
		}
		seed := &domain.AdminIdentity{
			UserName:     cfg.AdminSeedUser,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if err := adminRepo.Store(ctx, seed); err != nil {
			log.Error("failed to seed admin identity", "error", err)
			os.Exit(1)
		}
		log.Info("seed admin identity ensured", "user_name", cfg.AdminSeedUser)
	}

	// --- Use Cases ---
	customerUC := usecase.NewCustomerService(customerRepo, m)
	adminUC := usecase.NewRetailerAdminService(directory, customerRepo, m)

	// --- Admin & Metrics Server ---
	adminMux := http.NewServeMux()
	adminMux.Handle("/metrics", promhttp.Handler())
	adminMux.Handle("/", api.NewAdminRouter(adminUC, adminRepo))

	adminServer := &http.Server{
		Addr:    cfg.AdminServerAddr,
		Handler: middleware.Logging(log)(adminMux),
	}

	go func() {
		log.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Public Server ---
	publicRouter := api.NewRouter(directory, customerUC, m)
	publicServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      middleware.Logging(log)(publicRouter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		log.Info("starting public server", "addr", publicServer.Addr)
		if err := publicServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("public server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	log.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		log.Error("admin server shutdown failed", "error", err)
	}
	if err := publicServer.Shutdown(shutdownCtx); err != nil {
		log.Error("public server shutdown failed", "error", err)
	}

	log.Info("servers shut down gracefully")
}
