package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a store backed by a Redis client. Keys are namespaced as
// "{prefix}:{key}" when a prefix is set.
type Redis[V any] struct {
	client     redis.UniversalClient
	codec      Codec[V]
	prefix     string
	defaultTTL time.Duration
}

// RedisOption configures a Redis store.
type RedisOption func(*redisConfig)

type redisConfig struct {
	prefix     string
	defaultTTL time.Duration
}

// WithPrefix namespaces all keys.
func WithPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.prefix = prefix
	}
}

// WithRedisDefaultTTL sets the TTL used when Set receives zero. Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(c *redisConfig) {
		c.defaultTTL = d
	}
}

// NewRedis creates a Redis-backed store. A nil codec means JSONCodec.
// The client lifecycle belongs to the caller (see pkg/redis).
func NewRedis[V any](client redis.UniversalClient, codec Codec[V], opts ...RedisOption) *Redis[V] {
	cfg := &redisConfig{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(cfg)
	}
	if codec == nil {
		codec = JSONCodec[V]{}
	}
	return &Redis[V]{
		client:     client,
		codec:      codec,
		prefix:     cfg.prefix,
		defaultTTL: cfg.defaultTTL,
	}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return r.codec.Decode(data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.codec.Encode(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, resolveTTL(ttl, r.defaultTTL)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.client.Del(ctx, full...).Err()
}

// Close is a no-op; the client is shared and closed by its owner.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

var _ Cache[string] = (*Redis[string])(nil)
