package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisDocStore keeps each document in a single Redis string value and
// publishes a message on "<prefix><key>:changed" after every write so
// other processes (or other pollers in this one) can react without
// polling Redis themselves. Documents have no TTL; like localStorage they
// live until overwritten.
type RedisDocStore struct {
	rdb    *redis.Client
	prefix string
}

var _ DocStore = (*RedisDocStore)(nil)

// NewRedisDocStore wraps an existing client. prefix namespaces the keys
// (e.g. "cinema:"); pass "" to use the raw document keys.
func NewRedisDocStore(rdb *redis.Client, prefix string) *RedisDocStore {
	return &RedisDocStore{rdb: rdb, prefix: prefix}
}

func (s *RedisDocStore) dataKey(key string) string    { return s.prefix + key }
func (s *RedisDocStore) changeChan(key string) string { return s.prefix + key + ":changed" }

func (s *RedisDocStore) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := s.rdb.Get(ctx, s.dataKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get %s: %v", ErrStorageUnavailable, key, err)
	}
	return val, nil
}

func (s *RedisDocStore) Save(ctx context.Context, key string, doc []byte) error {
	if err := s.rdb.Set(ctx, s.dataKey(key), doc, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set %s: %v", ErrStorageUnavailable, key, err)
	}
	// Change notification is best effort; a missed publish only delays
	// watchers until their next poll tick.
	_ = s.rdb.Publish(ctx, s.changeChan(key), "1").Err()
	return nil
}

func (s *RedisDocStore) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	sub := s.rdb.Subscribe(ctx, s.changeChan(key))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("%w: redis subscribe %s: %v", ErrStorageUnavailable, key, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
