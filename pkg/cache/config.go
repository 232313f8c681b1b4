package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Drivers accepted by Config.Driver.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config selects and tunes the store backend.
type Config struct {
	Driver     string        `env:"CACHE_DRIVER" envDefault:"memory"`
	Prefix     string        `env:"CACHE_PREFIX" envDefault:"mailpreview"`
	DefaultTTL time.Duration `env:"CACHE_TTL" envDefault:"720h"`
	MaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"10000"`
}

// New builds the store named by cfg.Driver. The redis driver needs a
// connected client.
func New[V any](cfg Config, client redis.UniversalClient) (Cache[V], error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory[V](
			WithDefaultTTL(cfg.DefaultTTL),
			WithMaxEntries(cfg.MaxEntries),
		), nil
	case DriverRedis:
		if client == nil {
			return nil, ErrNoRedisClient
		}
		return NewRedis[V](client, nil,
			WithPrefix(cfg.Prefix),
			WithRedisDefaultTTL(cfg.DefaultTTL),
		), nil
	default:
		return nil, ErrUnknownDriver
	}
}
