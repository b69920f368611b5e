package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRunLock guards a generation run with SET NX + TTL. The TTL bounds
// how long a crashed run can keep the period blocked.
type RedisRunLock struct {
	rdb *redis.Client
}

func NewRedisRunLock(rdb *redis.Client) *RedisRunLock { return &RedisRunLock{rdb: rdb} }

func (l *RedisRunLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (l *RedisRunLock) Release(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, key).Err()
}
