package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, key).Bytes()
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// JSON helpers

func (c *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}

// Catalog cache keys. Lists are cheap to rebuild, so TTLs stay short and a
// new sticker shows up within minutes without explicit invalidation.
const (
	StickerListKey    = "catalog:stickers"
	CollectionListKey = "catalog:collections"
	ReviewListKey     = "catalog:reviews"

	StickerListTTL    = 5 * time.Minute
	CollectionListTTL = 10 * time.Minute
	ReviewListTTL     = 5 * time.Minute

	StickerTTL    = time.Hour
	CollectionTTL = time.Hour
)

func StickerKey(slug string) string {
	return "catalog:sticker:" + slug
}

func CollectionKey(slug string) string {
	return "catalog:collection:" + slug
}
