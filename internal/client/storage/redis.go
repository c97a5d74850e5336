package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps entries as plain Redis strings. MultiSet uses MSET and
// MultiRemove a single DEL, so both are atomic on the server.
type RedisStorage struct {
	rdb redis.UniversalClient
}

func NewRedisStorage(rdb redis.UniversalClient) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

// OpenRedis connects to addr and checks the connection with PING.
func OpenRedis(ctx context.Context, addr string, db int) (*RedisStorage, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: ping redis %s: %w", ErrStorage, addr, err)
	}
	return NewRedisStorage(rdb), nil
}

func (s *RedisStorage) MultiGet(ctx context.Context, keys []string) ([]Lookup, error) {
	if len(keys) == 0 {
		return []Lookup{}, nil
	}

	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get items: %w", ErrStorage, err)
	}

	out := make([]Lookup, len(keys))
	for i, k := range keys {
		out[i] = Lookup{Key: k}
		if str, ok := values[i].(string); ok {
			out[i].Value = str
			out[i].Found = true
		}
	}
	return out, nil
}

func (s *RedisStorage) MultiSet(ctx context.Context, pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	args := make([]any, 0, len(pairs)*2)
	for _, p := range pairs {
		args = append(args, p.Key, p.Value)
	}
	if err := s.rdb.MSet(ctx, args...).Err(); err != nil {
		return fmt.Errorf("%w: failed to set items: %w", ErrStorage, err)
	}
	return nil
}

func (s *RedisStorage) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: failed to remove items: %w", ErrStorage, err)
	}
	return nil
}

func (s *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to get item[%s]: %w", ErrStorage, key, err)
	}
	return v, true, nil
}

func (s *RedisStorage) SetItem(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: failed to set item[%s]: %w", ErrStorage, key, err)
	}
	return nil
}

func (s *RedisStorage) Close() error {
	return s.rdb.Close()
}
