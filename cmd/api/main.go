package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bimakw/wallet-analyzer/internal/application/services"
	"github.com/bimakw/wallet-analyzer/internal/config"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/cache"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/metrics"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/solana"
	"github.com/bimakw/wallet-analyzer/internal/presentation/handlers"
	"github.com/bimakw/wallet-analyzer/internal/presentation/middleware"
	"github.com/bimakw/wallet-analyzer/internal/presentation/report"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithEnvFile(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("Starting wallet-analyzer API",
		zap.Int("port", cfg.API.Port),
		zap.String("rpc_url", cfg.Solana.RPCURL),
	)

	analyzerMetrics := metrics.NewAnalyzerMetrics()

	// Solana RPC client
	client := solana.NewClient(cfg.Solana, analyzerMetrics, logger)
	defer client.Close()

	// Connect to Redis cache (optional)
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(cfg.Redis, cfg.API.CacheTTL, logger)
		if err != nil {
			logger.Warn("Failed to connect to Redis, running without cache", zap.Error(err))
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	// Create services
	walletCache := cache.NewWalletCache()
	activityService := services.NewActivityService(client, walletCache, cfg.Analytics, analyzerMetrics, logger)
	analysisService := services.NewAnalysisService(activityService, walletCache, cfg.Analytics, analyzerMetrics, logger)
	transactionService := services.NewTransactionService(client, redisCache, analyzerMetrics, logger)

	// Create handlers
	renderer := report.NewRenderer()
	walletHandler := handlers.NewWalletHandler(activityService, analysisService, renderer, logger)
	transactionHandler := handlers.NewTransactionHandler(transactionService, renderer, logger)
	toolsHandler := handlers.NewToolsHandler(walletHandler, transactionHandler, logger)

	var cacheChecker handlers.HealthChecker
	if redisCache != nil {
		cacheChecker = redisCache
	}
	healthHandler := handlers.NewHealthHandler(client, cacheChecker)

	// Setup router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)

	// Health endpoints (no rate limiting)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/live", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimiter(cfg.API.RateLimitRPS))
		walletHandler.RegisterRoutes(r)
		transactionHandler.RegisterRoutes(r)
		toolsHandler.RegisterRoutes(r)
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Run server in goroutine
	go func() {
		logger.Info("API server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Received shutdown signal, shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped", zap.Int("cached_wallets", walletCache.Size()))
}

func setupLogger(cfg config.LogConfig) *zap.Logger {
	var zapLevel zapcore.Level
	switch cfg.Level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	encoding := "json"
	encoderConfig := zap.NewProductionEncoderConfig()
	if cfg.Format == "console" {
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, _ := config.Build()
	return logger
}
