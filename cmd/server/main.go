package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/rioplata-erp/tesoreria/internal/adapter/http"
	"github.com/rioplata-erp/tesoreria/internal/adapter/http/handler"
	postgresRepo "github.com/rioplata-erp/tesoreria/internal/adapter/repository/postgres"
	redisRepo "github.com/rioplata-erp/tesoreria/internal/adapter/repository/redis"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/config"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/logger"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/metrics"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/postgres"
	"github.com/rioplata-erp/tesoreria/internal/infrastructure/redis"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	clientRepo := postgresRepo.NewClientRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	certificateRepo := postgresRepo.NewCertificateRepository(pool)
	taxRepo := postgresRepo.NewClientTaxRepository(pool)
	receiptRepo := postgresRepo.NewReceiptRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	retrier := postgresRepo.NewRetrier(appLogger)

	// Initialize use cases
	clientUC := usecase.NewClientUseCase(txManager, clientRepo, movementRepo, appLogger)
	movementUC := usecase.NewMovementUseCase(txManager, clientRepo, movementRepo, appLogger)
	certificateUC := usecase.NewCertificateUseCase(clientRepo, certificateRepo, appLogger)
	taxUC := usecase.NewClientTaxUseCase(clientRepo, taxRepo, appLogger)
	receiptUC := usecase.NewReceiptUseCase(txManager, clientRepo, movementRepo, receiptRepo, appLogger)

	// Initialize metrics and handlers
	m := metrics.New()
	clientHandler := handler.NewClientHandler(clientUC, m)
	movementHandler := handler.NewMovementHandler(movementUC, retrier, m)
	certificateHandler := handler.NewCertificateHandler(certificateUC, m)
	taxHandler := handler.NewTaxHandler(taxUC)
	receiptHandler := handler.NewReceiptHandler(receiptUC, retrier, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ClientHandler:      clientHandler,
		MovementHandler:    movementHandler,
		CertificateHandler: certificateHandler,
		TaxHandler:         taxHandler,
		ReceiptHandler:     receiptHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		Metrics:            m,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
