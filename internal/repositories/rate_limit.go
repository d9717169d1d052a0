package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/entity-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// RateLimitResult describes one sliding window check.
type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type RateLimitRepository interface {
	CheckRateLimit(ctx context.Context, clientKey string) (*RateLimitResult, error)
}

type redisRateLimitRepository struct {
	client *redis.Client
	cfg    *config.RateConfig
	now    func() time.Time
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	redisURL := cfg.RedisConnect.GetDSN()
	slog.Info("Connecting to Redis", slog.String("url", fmt.Sprintf("redis://%s:<password>@%s:%s", cfg.RedisConnect.Username, cfg.RedisConnect.Host, cfg.RedisConnect.Port)))

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client *redis.Client, cfg *config.RateConfig) RateLimitRepository {
	return &redisRateLimitRepository{client: client, cfg: cfg, now: time.Now}
}

// CheckRateLimit records a request for clientKey and reports whether it fits in the window.
//
// Each request is a member of a sorted set scored by its timestamp:
//
//	rate_limit:10.0.0.7 -> {1700000020.1: ..., 1700000045.8: ...}
//
// Entries older than the window are trimmed before counting.
func (r *redisRateLimitRepository) CheckRateLimit(ctx context.Context, clientKey string) (*RateLimitResult, error) {

	key := "rate_limit:" + clientKey

	now := r.now()
	windowStart := now.Add(-r.cfg.WindowSize)

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	requests := count.Val()

	if requests > r.cfg.MaxRequests {

		oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return &RateLimitResult{Allowed: false, RetryAfter: r.cfg.WindowSize}, nil
		}

		retryAfter := time.Unix(0, int64(oldest[0].Score)).Add(r.cfg.WindowSize).Sub(now)

		return &RateLimitResult{Allowed: false, RetryAfter: max(retryAfter, time.Second)}, nil
	}

	return &RateLimitResult{Allowed: true, Remaining: r.cfg.MaxRequests - requests}, nil
}
