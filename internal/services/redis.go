package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache wraps the shared Redis connection
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis client and checks the connection
func NewRedisCache(redisURL string, logger *zap.Logger) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("Redis connection established", zap.String("addr", opt.Addr))
	return &RedisCache{client: client}, nil
}

// IncrementWindow increments a counter and sets its expiry when it is first
// created. It returns the new count.
func (c *RedisCache) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// RedisRateLimitStore counts requests per identifier in fixed windows so the
// limit is shared by every server instance. It satisfies echo's
// middleware.RateLimiterStore.
type RedisRateLimitStore struct {
	Cache  *RedisCache
	Limit  int
	Window time.Duration
	Prefix string
	now    func() time.Time
}

// NewRedisRateLimitStore allows limit requests per identifier per window
func NewRedisRateLimitStore(cache *RedisCache, limit int, window time.Duration) *RedisRateLimitStore {
	return &RedisRateLimitStore{
		Cache:  cache,
		Limit:  limit,
		Window: window,
		Prefix: "ratelimit:leads",
		now:    time.Now,
	}
}

// WindowKey returns the counter key for identifier at the current window
func (s *RedisRateLimitStore) WindowKey(identifier string) string {
	window := s.now().Truncate(s.Window).Unix()
	return fmt.Sprintf("%s:%s:%d", s.Prefix, identifier, window)
}

func (s *RedisRateLimitStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	count, err := s.Cache.IncrementWindow(ctx, s.WindowKey(identifier), s.Window)
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return count <= int64(s.Limit), nil
}
