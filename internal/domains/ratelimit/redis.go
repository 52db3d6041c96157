package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// consumeScript runs the whole check-then-add atomically on the server.
// KEYS[1] sorted set of event timestamps (ms)
// ARGV: now_ms, window_ms, quota, member
var consumeScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local quota = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
if redis.call('ZCARD', key) >= quota then
	return 0
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// RedisLimiter is the default backend: one sorted set per identity holding
// the timestamps of admitted writes.
type RedisLimiter struct {
	client redis.Scripter
	policy Policy
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client redis.Scripter, policy Policy, prefix string) (*RedisLimiter, error) {
	if err := policy.validate(); err != nil {
		return nil, err
	}
	return &RedisLimiter{
		client: client,
		policy: policy,
		prefix: prefix,
		now:    time.Now,
	}, nil
}

func (l *RedisLimiter) TryConsume(ctx context.Context, identity string) (bool, error) {
	now := l.now()

	allowed, err := consumeScript.Run(ctx, l.client,
		[]string{l.key(identity)},
		now.UnixMilli(),
		l.policy.Window.Milliseconds(),
		l.policy.Quota,
		fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis limiter: %w", err)
	}

	return allowed == 1, nil
}

func (l *RedisLimiter) key(identity string) string {
	return l.prefix + identity
}
