package utils

import (
	"context"
	"time"

	"studybuddy/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AuthCacheClient is the dedicated client for verified-token caching.
var AuthCacheClient *redis.Client

// InitAuthCache connects the auth cache. When Redis is unreachable it logs a
// warning and leaves AuthCacheClient nil; token verification then goes
// straight to the identity provider.
func InitAuthCache(cfg config.Config, logger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Auth cache unavailable, verifying tokens directly",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = client.Close()
		AuthCacheClient = nil
		return nil
	}
	AuthCacheClient = client
	return client
}
