package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AuthCachePrefix prefixes redis keys of verified tokens.
const AuthCachePrefix = "auth:"

// CachedProvider memoizes token verification in redis, keyed by the token
// hash. Without a cache client every call goes to the wrapped provider.
type CachedProvider struct {
	Provider
	Cache  *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewCachedProvider(p Provider, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProvider{Provider: p, Cache: cache, TTL: ttl, Logger: logger}
}

// HashToken returns the hex SHA-256 of a raw token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (c *CachedProvider) VerifyIDToken(ctx context.Context, idToken string) (*Token, error) {
	if c.Cache == nil {
		return c.Provider.VerifyIDToken(ctx, idToken)
	}
	key := AuthCachePrefix + HashToken(idToken)

	raw, err := c.Cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var tok Token
		if jsonErr := json.Unmarshal([]byte(raw), &tok); jsonErr == nil && time.Now().Before(tok.Expires) {
			return &tok, nil
		}
	case err != redis.Nil:
		c.Logger.Warn("Auth cache read failed, verifying directly", zap.Error(err))
	}

	tok, err := c.Provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	ttl := c.TTL
	if remaining := time.Until(tok.Expires); remaining < ttl {
		ttl = remaining
	}
	if ttl > 0 {
		if b, err := json.Marshal(tok); err == nil {
			if err := c.Cache.Set(ctx, key, b, ttl).Err(); err != nil {
				c.Logger.Warn("Auth cache write failed", zap.Error(err))
			}
		}
	}
	return tok, nil
}

// Forget drops a token from the cache so it is re-verified on next use.
func (c *CachedProvider) Forget(ctx context.Context, idToken string) error {
	if c.Cache == nil {
		return nil
	}
	return c.Cache.Del(ctx, AuthCachePrefix+HashToken(idToken)).Err()
}
