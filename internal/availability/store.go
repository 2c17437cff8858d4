package availability

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the counter backend. Implementations must provide per-key atomic
// increment and decrement; that atomicity is the only cross-worker
// synchronization the admission check relies on.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	SetIfAbsent(ctx context.Context, key string, value int64) (bool, error)
	DecrBy(ctx context.Context, key string, n int64) (int64, error)
	IncrBy(ctx context.Context, key string, n int64) (int64, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) SetIfAbsent(ctx context.Context, key string, value int64) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, 0).Result()
}

func (s *RedisStore) DecrBy(ctx context.Context, key string, n int64) (int64, error) {
	return s.rdb.DecrBy(ctx, key, n).Result()
}

func (s *RedisStore) IncrBy(ctx context.Context, key string, n int64) (int64, error) {
	return s.rdb.IncrBy(ctx, key, n).Result()
}

func (s *RedisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.rdb.Keys(ctx, prefix+"*").Result()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// Ping verifies connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.rdb.Ping(pingCtx).Err()
}
