package lib

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient replaces the shared instance with a custom client.
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

const idempotencyTTL = 24 * time.Hour

// GetCachedResponse returns the stored response body for an idempotency key,
// or "" when the key is unknown.
func GetCachedResponse(ctx context.Context, key string) string {
	rd := GetRedisClient()
	if rd == nil {
		return ""
	}
	val, err := rd.Get(ctx, key).Result()
	if err == redis.Nil {
		return ""
	} else if err != nil {
		log.Printf("[redis] Error retrieving value for %s: %s\n", key, err.Error())
		return ""
	}
	return val
}

// CacheResponse stores a successful mutating response under an idempotency
// key so a retried request replays instead of re-executing.
func CacheResponse(ctx context.Context, key, body string) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Set(ctx, key, body, idempotencyTTL).Err(); err != nil {
		log.Printf("[redis] Failed to set value for key %s: %s\n", key, err.Error())
	}
}
