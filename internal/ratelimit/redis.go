package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindow скользящее окно на sorted set. Счет и добавление выполняются атомарно.
// KEYS[1] ключ, ARGV: now ms, window ms, max, уникальный member.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
if redis.call('ZCARD', key) >= limit then
	return 0
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return 1
`)

// RedisLimiter лимитер со скользящим окном в Redis. Лимиты общие для всех инстансов сервиса.
type RedisLimiter struct {
	client   redis.Scripter
	settings Settings
	prefix   string
	now      func() time.Time
}

// NewRedisLimiter создает лимитер поверх redis клиента.
func NewRedisLimiter(client redis.Scripter, prefix string, settings Settings) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		settings: settings.normalize(),
		prefix:   "ratelimit:" + prefix,
		now:      time.Now,
	}
}

// Allow реализует Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	res, err := slidingWindow.Run(ctx, l.client, []string{l.prefix + key},
		strconv.FormatInt(l.now().UnixMilli(), 10),
		strconv.FormatInt(l.settings.Window.Milliseconds(), 10),
		strconv.Itoa(l.settings.Max),
		uuid.NewString(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return res == 1, nil
}
