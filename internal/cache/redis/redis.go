// Package redis implements the snapshot cache on Redis, for deployments where
// several API replicas share one snapshot. TTL handling is delegated to Redis
// key expiry.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/cache"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/models"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(opts cache.Options) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisAddr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	ttl := opts.TTL
	if ttl == 0 {
		ttl = cache.DefaultOptions().TTL
	}

	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, key string) (*models.Snapshot, error) {
	if key == "" {
		return nil, cache.ErrInvalidKey
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, cache.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var snapshot models.Snapshot
	if err := snapshot.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *Cache) Set(ctx context.Context, key string, snapshot *models.Snapshot) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	return c.client.Set(ctx, key, snapshot, c.ttl).Err()
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
