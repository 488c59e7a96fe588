// Package cache provides a small byte-oriented key/value cache used to keep
// slow or rate-limited lookups (geocoding, article categories) off the
// request path. Redis backs it in production; Noop is used when no Redis
// address is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is the cache contract the services depend on.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Redis is a Store backed by a go-redis client. Every key is namespaced
// with prefix so several deployments can share one Redis.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps client. Keys are stored as prefix + ":" + key.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Key returns the namespaced Redis key for key.
func (r *Redis) Key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.Key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache.Redis.Get: %w", err)
	}
	return b, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.Key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Set: %w", err)
	}
	return nil
}

func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.Key(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("cache.Redis.Del: %w", err)
	}
	return nil
}

// Noop is a Store that never holds anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error)              { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Del(context.Context, ...string) error                     { return nil }

// GetJSON reads key and decodes it into a T. ok is false on a miss.
// A value that no longer decodes is treated as a miss.
func GetJSON[T any](ctx context.Context, s Store, key string) (v T, ok bool, err error) {
	b, err := s.Get(ctx, key)
	if errors.Is(err, ErrMiss) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, nil
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key for ttl.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache.SetJSON: %w", err)
	}
	return s.Set(ctx, key, b, ttl)
}
