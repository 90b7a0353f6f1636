package storage

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/brewcart/pkg/redis"
)

type redisKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	StateKey(sessionID, namespace string) string
	Ping(ctx context.Context) error
}

// RedisStore keeps each namespace under bc:state:<session>:<namespace>. Every
// write refreshes the TTL; zero keeps keys forever.
type RedisStore struct {
	client redisKV
	ttl    time.Duration
}

// NewRedisStore wraps a redis client.
func NewRedisStore(client redisKV, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (r *RedisStore) Read(ctx context.Context, scope, namespace string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.StateKey(scope, namespace))
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *RedisStore) Write(ctx context.Context, scope, namespace string, payload []byte) error {
	return r.client.Set(ctx, r.client.StateKey(scope, namespace), string(payload), r.ttl)
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
