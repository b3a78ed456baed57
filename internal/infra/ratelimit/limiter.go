// Package ratelimit ограничение частоты создания бронирований на пользователя.
// Скользящее окно в Redis (sorted set + Lua скрипт), независимое от транзакции бронирования.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:reservations:user:"

// ARGV: now_ms, window_ms, limit, member
// Возвращает {allowed, remaining, retry_after_ms}
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local window_ms = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local member = ARGV[4]

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now_ms - window_ms)
	local count = redis.call('ZCARD', key)

	if count < limit then
		redis.call('ZADD', key, now_ms, member)
		redis.call('PEXPIRE', key, window_ms)
		return { 1, limit - count - 1, 0 }
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local retry_after = window_ms
	if oldest[2] ~= nil then
		retry_after = tonumber(oldest[2]) + window_ms - now_ms
	end
	if retry_after < 0 then retry_after = 0 end

	return { 0, 0, retry_after }
`)

// Decision результат проверки лимита
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RedisLimiter ограничитель на скользящем окне в Redis
type RedisLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
	now    func() time.Time
	logger Logger
}

// NewRedisLimiter создает ограничитель: не более limit попыток за window на пользователя
func NewRedisLimiter(client redis.Scripter, limit int, window time.Duration, logger Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
		logger: logger,
	}
}

// Allow учитывает попытку пользователя и сообщает, разрешена ли она.
// При недоступности Redis возвращает ErrLimiterUnavailable, решение принимает вызывающий
func (l *RedisLimiter) Allow(ctx context.Context, userID int64) (Decision, error) {
	key := fmt.Sprintf("%s%d", keyPrefix, userID)
	now := l.now()

	vals, err := slidingWindowScript.Run(ctx, l.client, []string{key},
		now.UnixMilli(),
		l.window.Milliseconds(),
		l.limit,
		uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("%w: Allow - run script: %v", ErrLimiterUnavailable, err)
	}

	if len(vals) != 3 {
		l.logger.Error("Rate limiter returned unexpected result for user_id=%d: %v", userID, vals)
		return Decision{}, fmt.Errorf("%w: Allow - unexpected script result %v", ErrLimiterUnavailable, vals)
	}

	return Decision{
		Allowed:    vals[0] == 1,
		Limit:      l.limit,
		Remaining:  int(vals[1]),
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// NoopLimiter разрешает все запросы (rate_limit.enabled = false)
type NoopLimiter struct{}

// Allow всегда разрешает
func (NoopLimiter) Allow(context.Context, int64) (Decision, error) {
	return Decision{Allowed: true}, nil
}
