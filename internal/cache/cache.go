// Package cache holds a read-through cache of webpage records.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/atinyakov/go-webpages/internal/models"
)

// ErrMiss is returned by Get when the record is not cached.
var ErrMiss = errors.New("cache miss")

// Cache stores individual records by id.
type Cache interface {
	Get(ctx context.Context, id int64) (models.Webpage, error)
	Set(ctx context.Context, w models.Webpage) error
	Delete(ctx context.Context, ids ...int64) error
	Close() error
}

// NoOpCache caches nothing.
type NoOpCache struct{}

func (NoOpCache) Get(context.Context, int64) (models.Webpage, error) {
	return models.Webpage{}, ErrMiss
}

func (NoOpCache) Set(context.Context, models.Webpage) error { return nil }
func (NoOpCache) Delete(context.Context, ...int64) error    { return nil }
func (NoOpCache) Close() error                              { return nil }

// RedisCache keeps JSON-encoded records in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to address and verifies the connection.
func NewRedisCache(ctx context.Context, address string, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        address,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Key is the Redis key of the record with id.
func Key(id int64) string {
	return fmt.Sprintf("webpage:%d", id)
}

func (c *RedisCache) Get(ctx context.Context, id int64) (models.Webpage, error) {
	data, err := c.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Webpage{}, ErrMiss
		}
		return models.Webpage{}, err
	}

	var w models.Webpage
	if err := json.Unmarshal(data, &w); err != nil {
		return models.Webpage{}, err
	}
	return w, nil
}

func (c *RedisCache) Set(ctx context.Context, w models.Webpage) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(w.ID), data, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
