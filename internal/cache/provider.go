package cache

// Package cache provides the shared key/value store used for credential
// token mirroring and request idempotency.

import (
	"context"
	"fmt"
	"time"
)

// Provider is a small TTL'd key/value interface with memory and redis
// implementations.
type Provider interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Provider              string
	RedisConnectionString string
}

func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryProvider()
	case "redis":
		return NewRedisProvider(cfg.RedisConnectionString)
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", cfg.Provider)
	}
}

// TokenKey is the cache key for an external system's credential token.
func TokenKey(system string) string {
	return fmt.Sprintf("credential:%s", system)
}
