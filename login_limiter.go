package classicmatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// loginLimiter throttles login attempts with a Redis fixed window keyed by
// lowercased email and, optionally, client IP. It is only constructed when
// throttling is enabled; a nil limiter allows everything.
type loginLimiter struct {
	redis  *redis.Client
	config ThrottleConfig
}

func newLoginLimiter(redisClient *redis.Client, cfg ThrottleConfig) *loginLimiter {
	return &loginLimiter{
		redis:  redisClient,
		config: cfg,
	}
}

// Check increments the fixed-window counters for the attempt and returns
// ErrLoginRateLimited once the window budget is exhausted. Redis outages
// surface as ErrStorageUnavailable so the caller can decide how to degrade.
func (l *loginLimiter) Check(ctx context.Context, email, ip string) error {
	if l == nil || l.redis == nil {
		return nil
	}

	if err := l.enforceFixedWindow(ctx, loginEmailKey(email)); err != nil {
		return err
	}
	if ip != "" {
		if err := l.enforceFixedWindow(ctx, loginIPKey(ip)); err != nil {
			return err
		}
	}
	return nil
}

func (l *loginLimiter) enforceFixedWindow(ctx context.Context, key string) error {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.Window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	if count > int64(l.config.MaxAttempts) {
		return ErrLoginRateLimited
	}

	return nil
}

func loginEmailKey(email string) string {
	return "cml:email:" + strings.ToLower(email)
}

func loginIPKey(ip string) string {
	return "cml:ip:" + ip
}
