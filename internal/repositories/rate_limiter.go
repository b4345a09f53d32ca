package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aaravmahajanofficial/storefront/internal/config"
)

// RateLimiter counts hits per key in a sliding window.
type RateLimiter interface {
	// Allow records a hit for key and reports whether the key is still within
	// limit hits per window. When it is not, retryAfter is the wait until the
	// oldest hit leaves the window.
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (allowed bool, retryAfter time.Duration, err error)
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Connected to Redis", slog.String("host", cfg.RedisConnect.Host), slog.String("port", cfg.RedisConnect.Port))

	return client, nil
}

type redisRateLimiter struct {
	client redis.Cmdable
	now    func() time.Time
	member func() string
}

func NewRateLimiter(client redis.Cmdable) RateLimiter {
	return &redisRateLimiter{
		client: client,
		now:    time.Now,
		member: func() string { return uuid.NewString() },
	}
}

// Hits are sorted-set members scored by their unix-millisecond timestamp.
func (r *redisRateLimiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, time.Duration, error) {

	now := r.now().UnixMilli()
	windowStart := now - window.Milliseconds()

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: r.member()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	if count.Val() <= limit {
		return true, 0, nil
	}

	oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return false, window, fmt.Errorf("failed to get oldest hit for %s: %w", key, err)
	}

	if len(oldest) == 0 {
		return false, window, nil
	}

	retryAfter := max(time.Duration(int64(oldest[0].Score)+window.Milliseconds()-now)*time.Millisecond, 0)

	return false, retryAfter, nil
}

type noopRateLimiter struct{}

// NewNoopRateLimiter allows everything; used when Redis is disabled.
func NewNoopRateLimiter() RateLimiter {
	return noopRateLimiter{}
}

func (noopRateLimiter) Allow(context.Context, string, int64, time.Duration) (bool, time.Duration, error) {
	return true, 0, nil
}
