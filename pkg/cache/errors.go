package cache

import "errors"

var (
	ErrNotFound      = errors.New("cache: entry not found")
	ErrClosed        = errors.New("cache: closed")
	ErrEncode        = errors.New("cache: failed to encode value")
	ErrDecode        = errors.New("cache: failed to decode value")
	ErrUnknownDriver = errors.New("cache: unknown driver")
	ErrNoRedisClient = errors.New("cache: redis driver requires a client")
)
