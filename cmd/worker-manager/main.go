// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"unrc-workers/internal/common/camunda"
	"unrc-workers/internal/common/config"
	"unrc-workers/internal/common/database"
	"unrc-workers/internal/common/logger"
	"unrc-workers/internal/common/observability"

	qp "unrc-workers/internal/workers/data-access/query-postgresql"
	so "unrc-workers/internal/workers/data-access/search-opportunities"
	ro "unrc-workers/internal/workers/matching/rank-opportunities"
	sc "unrc-workers/internal/workers/matching/score-compatibility"
	nm "unrc-workers/internal/workers/notification/notify-match"
	ers "unrc-workers/internal/workers/profile/extract-resume-skills"
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
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Camunda Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Camunda client initialization")

	if err != nil {
		zapLog.Fatal("camunda client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Camunda client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	var workers []*camunda.CamundaWorker
	startWorker := func(taskType string, handlerFunc camunda.JobHandlerFunc) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		w := camunda.NewWorker(
			zeebeClient,
			taskType,
			wcfg.MaxJobsActive,
			time.Duration(wcfg.Timeout)*time.Millisecond,
			handlerFunc,
			zapLog,
		)
		workers = append(workers, w)
	}

	// --- Data Access Workers ---
	{
		handler := qp.NewHandler(
			&qp.Config{
				Timeout: time.Duration(cfg.Workers[qp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(qp.TaskType, handler.Handle)
	}

	{
		handler := so.NewHandler(
			&so.Config{
				Timeout: time.Duration(cfg.Workers[so.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		startWorker(so.TaskType, handler.Handle)
	}

	// --- Matching Workers ---
	{
		handler := sc.NewHandler(
			&sc.Config{
				CacheTTL: time.Duration(cfg.Matching.CacheTTL) * time.Second,
				Timeout:  time.Duration(cfg.Workers[sc.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(sc.TaskType, handler.Handle)
	}

	{
		handler := ro.NewHandler(
			&ro.Config{
				MaxItems: cfg.Matching.MaxSearchResults,
				Timeout:  time.Duration(cfg.Workers[ro.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(ro.TaskType, handler.Handle)
	}

	// --- Profile Workers ---
	{
		handler := ers.NewHandler(
			&ers.Config{
				Timeout: time.Duration(cfg.Workers[ers.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(ers.TaskType, handler.Handle)
	}

	// --- Notification Workers ---
	if cfg.Workers[nm.TaskType].Enabled {
		handler, err := nm.NewHandler(
			&nm.Config{
				EmailEnabled:      cfg.Notifications.Email.Enabled,
				SMSEnabled:        cfg.Notifications.SMS.Enabled,
				FromEmail:         cfg.Notifications.Email.FromEmail,
				AWSRegion:         cfg.Notifications.AWS.Region,
				MinNotifyScore:    cfg.Matching.MinNotifyScore,
				SMSScoreThreshold: cfg.Notifications.SMS.ScoreThreshold,
				Timeout:           time.Duration(cfg.Workers[nm.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create notify-match handler", zap.Error(err))
		}
		startWorker(nm.TaskType, handler.Handle)
	}

	zapLog.Info("All workers registered", zap.Int("count", len(workers)))

	// --- Health / Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := pg.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"reason": err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Camunda client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
