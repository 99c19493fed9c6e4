package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLTagList = 1 * time.Minute // tag listings carry derived counts, keep short
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixTags = "tags:"
)

// Service Redis cache for listing responses
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetTagList(ctx context.Context, page, limit int, keyword string, dest interface{}) error
	SetTagList(ctx context.Context, page, limit int, keyword string, data interface{}) error
	InvalidateTagLists(ctx context.Context) error

	IsAvailable() bool
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis-backed cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func tagListKey(page, limit int, keyword string) string {
	return fmt.Sprintf("%sp%d:l%d:k%s", PrefixTags, page, limit, keyword)
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) GetTagList(ctx context.Context, page, limit int, keyword string, dest interface{}) error {
	return c.Get(ctx, tagListKey(page, limit, keyword), dest)
}

func (c *redisCache) SetTagList(ctx context.Context, page, limit int, keyword string, data interface{}) error {
	return c.Set(ctx, tagListKey(page, limit, keyword), data, TTLTagList)
}

// InvalidateTagLists removes every cached tag listing page
func (c *redisCache) InvalidateTagLists(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, PrefixTags+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}

func (c *redisCache) IsAvailable() bool {
	if c.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err() == nil
}
