// internal/storage/redis.go
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProvider keeps each origin in one hash at "<prefix>:<origin>". HSET and HDEL
// touch all their fields in a single command, which keeps the session keys together.
type RedisProvider struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type RedisOption func(*RedisProvider)

// WithIdleTTL expires an origin that has not been written for ttl.
func WithIdleTTL(ttl time.Duration) RedisOption {
	return func(p *RedisProvider) {
		p.ttl = ttl
	}
}

func NewRedisProvider(client *redis.Client, prefix string, opts ...RedisOption) *RedisProvider {
	p := &RedisProvider{client: client, prefix: prefix}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DialRedis connects and pings.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (p *RedisProvider) Open(origin string) Store {
	return &redisStore{provider: p, key: p.hashKey(origin)}
}

func (p *RedisProvider) Close() error {
	return p.client.Close()
}

func (p *RedisProvider) hashKey(origin string) string {
	var builder strings.Builder
	builder.Grow(len(p.prefix) + 1 + len(origin))
	builder.WriteString(p.prefix)
	builder.WriteString(":")
	builder.WriteString(origin)
	return builder.String()
}

type redisStore struct {
	provider *RedisProvider
	key      string
}

func (s *redisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.provider.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *redisStore) SetMany(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	fields := make(map[string]any, len(entries))
	for k, v := range entries {
		fields[k] = v
	}

	pipe := s.provider.client.TxPipeline()
	pipe.HSet(ctx, s.key, fields)
	if s.provider.ttl > 0 {
		pipe.Expire(ctx, s.key, s.provider.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.provider.client.HDel(ctx, s.key, keys...).Err()
}
