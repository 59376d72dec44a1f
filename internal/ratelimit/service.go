// Package ratelimit caps outbound calls per phone number so a bad client
// cannot burn through Twilio credit dialing the same patient repeatedly.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	redisclient "medicare-call-server/internal/clients/redis"
	"medicare-call-server/internal/observability"

	"github.com/redis/go-redis/v9"
)

const window = time.Hour

// CallCounter is the persistence fallback used when Redis is unavailable.
type CallCounter interface {
	CountCallsToPhoneSince(ctx context.Context, phone string, since time.Time) (int, error)
}

// Service implements sliding-window rate limiting over Redis sorted sets,
// falling back to counting call logs in PostgreSQL.
type Service struct {
	redis  *redisclient.Client
	calls  CallCounter
	limit  int
	logger *observability.Logger
}

func NewService(redis *redisclient.Client, calls CallCounter, limit int, logger *observability.Logger) *Service {
	return &Service{
		redis:  redis,
		calls:  calls,
		limit:  limit,
		logger: logger,
	}
}

// Allow reports whether another call to phone fits inside the window, and
// records the attempt when it does.
func (s *Service) Allow(ctx context.Context, phone string) (bool, error) {
	if s.limit <= 0 {
		return true, nil
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "phone", Value: phone})

	if s.redis.IsEnabled() {
		allowed, err := s.allowRedis(ctx, phone)
		if err == nil {
			return allowed, nil
		}
		s.logger.Error(ctx, "Redis rate limit check failed, falling back to call logs", err)
	}

	return s.allowPostgres(ctx, phone)
}

func rateLimitKey(phone string) string {
	return "calllimit:" + phone
}

func (s *Service) allowRedis(ctx context.Context, phone string) (bool, error) {
	key := rateLimitKey(phone)
	now := time.Now()
	windowStartMs := now.Add(-window).UnixMilli()

	client := s.redis.GetClient()

	if err := client.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStartMs)).Err(); err != nil {
		return false, fmt.Errorf("failed to trim rate limit window: %w", err)
	}

	count, err := client.ZCard(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count calls in window: %w", err)
	}
	if int(count) >= s.limit {
		return false, nil
	}

	nowMs := now.UnixMilli()
	err = client.ZAdd(ctx, key, redis.Z{
		Score:  float64(nowMs),
		Member: fmt.Sprintf("%d", nowMs),
	}).Err()
	if err != nil {
		return false, fmt.Errorf("failed to record call in window: %w", err)
	}

	if err := client.Expire(ctx, key, 2*window).Err(); err != nil {
		s.logger.Error(ctx, "failed to set expiration on rate limit key", err)
	}

	return true, nil
}

func (s *Service) allowPostgres(ctx context.Context, phone string) (bool, error) {
	count, err := s.calls.CountCallsToPhoneSince(ctx, phone, time.Now().Add(-window))
	if err != nil {
		return false, err
	}
	return count < s.limit, nil
}
