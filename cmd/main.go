package main

import (
	_ "customer-service/docs"
	"customer-service/internal/api"
	"customer-service/internal/batch"
	"customer-service/internal/config"
	"customer-service/internal/domain/customer"
	"customer-service/internal/event"
	"customer-service/internal/infrastructure/cache"
	"customer-service/internal/infrastructure/database/gormstore"
	"customer-service/internal/infrastructure/database/memory"
	"customer-service/internal/infrastructure/database/postgres"
	"customer-service/internal/infrastructure/logging"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	driverPostgres = "postgres"
	driverGorm     = "gorm"
	driverMemory   = "memory"

	defaultStatsSchedule = "*/5 * * * *"
	defaultStatsTimeout  = time.Minute
)

// @title Customer Service API
// @version 1.0
// @description REST catalog of customer records: create, read, update, delete, suspend and attribute search.

// @contact.name API Support
// @contact.email support@customer-service.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api
func main() {
	cfg, logger := initializeApp()

	ctx := context.Background()
	repo, closeRepo, err := initializeRepository(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize customer repository", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	servedRepo, closeCache := initializeCache(ctx, cfg.Cache, repo, logger)
	defer closeCache()

	publisher, closePublisher := initializePublisher(cfg.RabbitMQ, logger)
	defer closePublisher()

	customerService := customer.NewCustomerService(servedRepo, publisher, logger)
	statsJob := batch.NewCustomerStatsJob(repo, cfg.Batch.StatsTimeout, logger)

	cronScheduler := startBatchJobs(cfg, logger, statsJob)
	router := api.SetupRouter(customerService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed(), "driver", cfg.Database.Driver)

	return cfg, logger
}

// initializeRepository opens the storage engine named by cfg.Driver. The
// returned func releases it and is never nil.
func initializeRepository(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (customer.CustomerRepository, func(), error) {
	switch cfg.Driver {
	case driverPostgres, "":
		logger.Info("Initializing database connection pool...")
		pool, err := postgres.NewConnectionPool(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			logger.Info("Closing database connection pool...")
			pool.Close()
		}
		if cfg.EnsureSchema {
			if err := postgres.EnsureSchema(ctx, pool, logger); err != nil {
				closeFn()
				return nil, nil, err
			}
		}
		return postgres.NewCustomerRepository(pool, logger), closeFn, nil

	case driverGorm:
		logger.Info("Opening gorm database...")
		db, err := gormstore.Open(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			logger.Info("Closing gorm database...")
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if cfg.EnsureSchema {
			if err := gormstore.AutoMigrate(db); err != nil {
				closeFn()
				return nil, nil, err
			}
		}
		return gormstore.NewCustomerRepository(db, logger), closeFn, nil

	case driverMemory:
		logger.Warn("Using in-memory customer store, data will not survive a restart")
		return memory.NewCustomerRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// initializeCache wraps repo with the redis read-through cache when enabled.
// A cache that cannot be reached at startup is skipped, not fatal.
func initializeCache(ctx context.Context, cfg config.CacheConfig, repo customer.CustomerRepository, logger *slog.Logger) (customer.CustomerRepository, func()) {
	if !cfg.Enabled {
		return repo, func() {}
	}

	client, err := cache.NewRedisClient(ctx, cfg, logger)
	if err != nil {
		logger.Warn("Redis unavailable, serving without cache", "addr", cfg.Addr, "error", err)
		return repo, func() {}
	}

	return cache.NewCustomerRepository(repo, client, cfg.TTL, logger), func() {
		logger.Info("Closing redis client...")
		_ = client.Close()
	}
}

func initializePublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (event.EventPublisher, func()) {
	if !cfg.Enabled {
		logger.Info("RabbitMQ disabled, customer events will not be published")
		return event.NoopPublisher{}, func() {}
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Warn("Failed to connect to RabbitMQ, customer events will not be published", "error", err)
		return event.NoopPublisher{}, func() {}
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.ExchangeName, logger)
	if err != nil {
		logger.Warn("Failed to set up RabbitMQ publisher", "error", err)
		_ = conn.Close()
		return event.NoopPublisher{}, func() {}
	}

	return publisher, func() {
		logger.Info("Closing RabbitMQ connection...")
		_ = conn.Close()
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, statsJob *batch.CustomerStatsJob) *cron.Cron {
	c := cron.New()

	scheduleSpec := cfg.Batch.StatsSchedule
	if scheduleSpec == "" {
		scheduleSpec = defaultStatsSchedule
		logger.Warn("Customer stats schedule not configured, using default", "schedule", scheduleSpec)
	}

	jobID, err := c.AddFunc(scheduleSpec, statsJob.Cron())
	if err != nil {
		logger.Error("Failed to schedule customer stats job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled customer stats job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
