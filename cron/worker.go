package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studybuddy/config"
	"studybuddy/services/matching"
	"studybuddy/services/tasks"
	"studybuddy/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Recommender recomputes a user's recommendations.
type Recommender interface {
	GenerateRecommendations(ctx context.Context, uid string) ([]matching.Recommendation, error)
}

// RedisOpt returns the asynq connection for the task queue DB.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// HandleRefreshTask recomputes and persists the recommendations of the
// payload's user. Bad payloads and deleted profiles are not retried.
func HandleRefreshTask(rec Recommender, logger *zap.Logger, metrics *utils.Collector) asynq.HandlerFunc {
	observe := func(status string) {
		if metrics != nil {
			metrics.RefreshTasks.WithLabelValues(status).Inc()
		}
	}
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseRefreshPayload(task)
		if err != nil {
			logger.Error("[RefreshWorker] invalid payload", zap.Error(err))
			observe("invalid")
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}

		recs, err := rec.GenerateRecommendations(ctx, p.UID)
		switch {
		case errors.Is(err, matching.ErrProfileNotFound):
			logger.Info("[RefreshWorker] profile gone, skipping", zap.String("uid", p.UID))
			observe("skipped")
			return nil
		case err != nil:
			logger.Warn("[RefreshWorker] refresh failed", zap.String("uid", p.UID), zap.Error(err))
			observe("failed")
			return err
		}
		logger.Debug("[RefreshWorker] recommendations refreshed",
			zap.String("uid", p.UID), zap.Int("count", len(recs)))
		observe("ok")
		return nil
	}
}

// NewRefreshServer builds the asynq server and its mux.
func NewRefreshServer(cfg config.Config, rec Recommender, logger *zap.Logger, metrics *utils.Collector) (*asynq.Server, *asynq.ServeMux) {
	concurrency := cfg.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(RedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRefreshRecommendations, HandleRefreshTask(rec, logger, metrics))
	return srv, mux
}

// StartRefreshWorker starts the server in the background, retrying startup
// with a growing delay, and watches the queue's Redis until ctx ends.
func StartRefreshWorker(ctx context.Context, cfg config.Config, rec Recommender, logger *zap.Logger, metrics *utils.Collector) *asynq.Server {
	srv, mux := NewRefreshServer(cfg, rec, logger, metrics)

	go monitorRedisConnection(ctx, cfg, logger)
	go func() {
		logger.Info("[RefreshWorker] starting async worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("[RefreshWorker] failed to start worker",
				zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempt == maxAttempts {
				logger.Error("[RefreshWorker] giving up; recommendations will only refresh on request")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempt*2) * time.Second):
			}
		}
	}()
	return srv
}

// monitorRedisConnection pings the queue's Redis periodically to surface
// outages in the logs.
func monitorRedisConnection(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("[RefreshWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
