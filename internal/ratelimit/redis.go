package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/x-assistant/internal/pkg/log"
)

// fixedWindow атомарно инкрементит счётчик и ставит TTL окна на первом запросе.
var fixedWindow = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// Redis — общее для всех инстансов хранилище счётчиков.
// Окно сбрасывается истечением TTL ключа.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

// NewRedis создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "xa:rl:".
func NewRedis(ctx context.Context, redisURL, prefix string) (*Redis, error) {
	const op = "internal/ratelimit/NewRedis"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return NewRedisFromClient(rdb, prefix), nil
}

// NewRedisFromClient оборачивает готовый клиент.
func NewRedisFromClient(rdb *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "xa:rl:"
	}

	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) Allow(ctx context.Context, key string, max int, window time.Duration) bool {
	ms := window.Milliseconds()
	if ms < 1 {
		ms = 1
	}

	n, err := fixedWindow.Run(ctx, r.rdb, []string{r.prefix + key}, ms).Int64()
	if err != nil {
		log.From(ctx).Warn("ratelimit_store_failed",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
		return true
	}

	return n == 1 || n <= int64(max)
}

// Close закрывает клиент Redis.
func (r *Redis) Close() error { return r.rdb.Close() }
