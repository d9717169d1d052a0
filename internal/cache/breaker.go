package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/entity-api/internal/config"
	"github.com/sony/gobreaker/v2"
)

// breakerCache stops calling a failing cache for a while. While the breaker
// is open reads are misses and writes are dropped, so callers fall back to the database.
type breakerCache struct {
	next Cache
	cb   *gobreaker.CircuitBreaker[bool]
}

func NewBreakerCache(next Cache, cfg *config.CacheConfig) Cache {

	threshold := cfg.BreakerFailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	settings := gobreaker.Settings{
		Name:        "cache",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &breakerCache{next: next, cb: gobreaker.NewCircuitBreaker[bool](settings)}
}

func (b *breakerCache) Get(ctx context.Context, key string, value any) (bool, error) {

	found, err := b.cb.Execute(func() (bool, error) {
		return b.next.Get(ctx, key, value)
	})
	if isBreakerRejection(err) {
		return false, nil
	}

	return found, err
}

func (b *breakerCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {

	_, err := b.cb.Execute(func() (bool, error) {
		return true, b.next.Set(ctx, key, value, ttl)
	})
	if isBreakerRejection(err) {
		return nil
	}

	return err
}

func (b *breakerCache) Delete(ctx context.Context, key string) error {

	_, err := b.cb.Execute(func() (bool, error) {
		return true, b.next.Delete(ctx, key)
	})
	if isBreakerRejection(err) {
		return nil
	}

	return err
}

func (b *breakerCache) Close() error {
	return b.next.Close()
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
