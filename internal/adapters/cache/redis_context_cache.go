package cache

import (
	"context"
	"dfc-optim-service/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "dfcoptim:context:"

// RedisContextCache keeps context documents in Redis with a TTL.
type RedisContextCache struct {
	client redis.UniversalClient
}

func NewRedisContextCache(client redis.UniversalClient) *RedisContextCache {
	return &RedisContextCache{client: client}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func (r *RedisContextCache) Get(ctx context.Context, url string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "context.redis.Get")(&err)

	url = strings.TrimSpace(url)
	if url == "" {
		return nil, false, errors.New("get context cache: url must not be empty")
	}

	doc, err := r.client.Get(ctx, redisKeyPrefix+url).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get context cache: %w", err)
	}
	return doc, true, nil
}

func (r *RedisContextCache) Put(ctx context.Context, url string, doc []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "context.redis.Put")(&err)

	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("insert context cache: empty url key")
	}
	if len(doc) == 0 {
		return fmt.Errorf("insert context cache url=%q: empty document", url)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+url, doc, ttl).Err(); err != nil {
		return fmt.Errorf("insert context cache url=%q: %w", url, err)
	}
	return nil
}
