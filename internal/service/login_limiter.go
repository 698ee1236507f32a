package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/field-activity-service/internal/config"
	"github.com/spec-kit/field-activity-service/internal/domain"
)

const loginAttemptKeyPrefix = "login_attempts:"

// LoginLimiter throttles repeated failed logins per username using
// Redis counters with a sliding expiry window. Redis being unreachable
// never blocks logins; the limiter fails open.
type LoginLimiter struct {
	client *redis.Client
	logger *zap.Logger
	limit  int
	window time.Duration
}

// NewLoginLimiter builds a limiter, or nil when throttling is disabled.
func NewLoginLimiter(client *redis.Client, logger *zap.Logger, cfg config.AuthConfig) *LoginLimiter {
	if client == nil || cfg.LoginAttemptLimit <= 0 {
		return nil
	}
	return &LoginLimiter{
		client: client,
		logger: logger,
		limit:  cfg.LoginAttemptLimit,
		window: cfg.LoginAttemptWindow(),
	}
}

// Check fails with ErrTooManyAttempts once the failure budget for the
// username is exhausted.
func (l *LoginLimiter) Check(ctx context.Context, username string) error {
	count, err := l.client.Get(ctx, loginAttemptKeyPrefix+username).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.logger.Warn("login limiter unavailable", zap.Error(err))
		}
		return nil
	}
	if count >= l.limit {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// RecordFailure bumps the counter and refreshes the window.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) {
	key := loginAttemptKeyPrefix + username
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("failed to record login attempt", zap.Error(err))
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if err := l.client.Del(ctx, loginAttemptKeyPrefix+username).Err(); err != nil {
		l.logger.Warn("failed to reset login attempts", zap.Error(err))
	}
}
