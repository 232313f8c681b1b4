package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Cache is a generic key-value store with TTL support.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the store's configured default TTL
//   - Negative: entry never expires
type Cache[V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Close releases resources held by the store.
	Close() error
}

// Codec converts values to bytes for backends that store raw data.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// JSONCodec encodes values as JSON. Strings are stored verbatim so that
// Redis keys stay readable with redis-cli.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) {
	if s, ok := any(v).(string); ok {
		return []byte(s), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return data, nil
}

func (JSONCodec[V]) Decode(data []byte) (V, error) {
	var v V
	if p, ok := any(&v).(*string); ok {
		*p = string(data)
		return v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrDecode, err)
	}
	return v, nil
}

// Lookup returns the value for key, or fallback when the key is missing.
// Other errors are returned as is.
func Lookup[V any](ctx context.Context, c Cache[V], key string, fallback V) (V, error) {
	v, err := c.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return v, nil
}

// resolveTTL maps the zero TTL to def. Negative values mean no expiry and
// are returned as zero.
func resolveTTL(ttl, def time.Duration) time.Duration {
	if ttl == 0 {
		ttl = def
	}
	return max(ttl, 0)
}
