// cmd/search-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"stapubox-search/internal/cache"
	"stapubox-search/internal/common/config"
	"stapubox-search/internal/common/database"
	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/common/observability"
	"stapubox-search/internal/search"
	"stapubox-search/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// config carries the log settings, so fall back to a default logger
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting search server...",
		zap.String("backend", cfg.Search.Backend),
		zap.String("index", cfg.Search.IndexName),
	)

	obs := observability.New("search-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init search backend ---
	var searcher search.Searcher
	switch cfg.Search.Backend {
	case "elasticsearch":
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			// Test the connection
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
		searcher = search.NewElasticsearchSearcher(esClient.Client, log)

	case "algolia":
		searcher = search.NewAlgoliaSearcher(
			cfg.Algolia.AppID,
			cfg.Algolia.APIKey,
			cfg.Algolia.BaseURL,
			config.GetDuration(cfg.Algolia.Timeout),
			log,
		)
		zapLog.Info("Algolia client initialized", zap.String("appId", cfg.Algolia.AppID))

	default:
		zapLog.Fatal("unknown search backend", zap.String("backend", cfg.Search.Backend))
	}

	// --- Init Redis response cache (optional) ---
	var respCache *cache.ResponseCache
	if cfg.Cache.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			// Test the connection with context
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		respCache = cache.New(redis, config.GetDuration(cfg.Cache.TTL), log)
	}

	handler := server.NewHandler(cfg, searcher, respCache, log, obs)
	srv := server.New(cfg, handler, log)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("Search server stopped gracefully")
}
