package persist

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the snapshot under a single redis key. Useful when the
// terminal machine has no writable disk but a local redis is around; the slot
// contract stays identical to the file backend.
type RedisSlot struct {
	rdb *redis.Client
	key string
}

func NewRedisSlot(rdb *redis.Client, key string) *RedisSlot {
	return &RedisSlot{rdb: rdb, key: key}
}

func (r *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	return data, err
}

func (r *RedisSlot) Save(ctx context.Context, data []byte) error {
	// No TTL: the snapshot is the system of record, not a cache.
	return r.rdb.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisSlot) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
