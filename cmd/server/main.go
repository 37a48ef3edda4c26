// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"faq-service/internal/alerts"
	"faq-service/internal/audit"
	"faq-service/internal/classifier"
	"faq-service/internal/common/aws"
	"faq-service/internal/common/config"
	"faq-service/internal/common/database"
	"faq-service/internal/common/logger"
	"faq-service/internal/common/observability"
	"faq-service/internal/composer"
	"faq-service/internal/knowledge"
	"faq-service/internal/pipeline"
	"faq-service/internal/server"
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
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting FAQ service...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Knowledge source ---
	var source knowledge.Source
	switch cfg.Knowledge.Source {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Knowledge.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		source = knowledge.NewPostgresSource(pg.GetDB(), cfg.Knowledge.Postgres.Table)
		zapLog.Info("PostgreSQL knowledge source connected")

	default:
		source = knowledge.NewAPISource(cfg.Knowledge.API)
		zapLog.Info("API knowledge source configured",
			zap.String("baseUrl", cfg.Knowledge.API.BaseURL))
	}

	// --- Refresh failure alerting ---
	var notifier knowledge.AlertNotifier
	if cfg.Alerts.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Alerts.SNS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		notifier = alerts.NewSNSNotifier(snsClient, cfg.Alerts.SNS.TopicARN, log)
		zapLog.Info("SNS refresh-failure alerts enabled",
			zap.String("topicArn", cfg.Alerts.SNS.TopicARN))
	}

	store := knowledge.NewStore(source, config.GetDuration(cfg.Knowledge.CacheTTL), log, notifier)

	// --- Classifier ---
	completer := classifier.NewOpenAICompleter(cfg.Classifier)
	matcher := classifier.New(completer, log)

	// --- Audit sink ---
	var recorder audit.Recorder
	switch cfg.Audit.Backend {
	case "redis":
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Audit.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		recorder = audit.NewRedisRecorder(redisClient.GetClient(), cfg.Audit.Redis.Key, int64(cfg.Audit.Redis.MaxLen))
		zapLog.Info("Redis audit sink connected")

	case "elasticsearch":
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Audit.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		recorder = audit.NewElasticsearchRecorder(esClient.Client, cfg.Audit.Elasticsearch.Index)
		zapLog.Info("Elasticsearch audit sink connected")

	default:
		zapLog.Info("Audit logging disabled")
	}
	dispatcher := audit.NewDispatcher(recorder, config.GetDuration(cfg.Audit.Timeout), log)

	// --- Pipeline and HTTP boundary ---
	p := pipeline.New(store, matcher, composer.Compose, dispatcher, obs, log)
	srv := server.New(p, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Handler(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Metrics & pprof server ---
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, nil); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("FAQ service stopped gracefully")
}
