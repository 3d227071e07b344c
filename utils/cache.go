// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"randevio/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (entitlement lookups and friends).
	CacheClient *redis.Client
	// DedupeClient is the dedicated client for inbound message deduplication.
	DedupeClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitDedupeCache initializes the Redis client backing webhook message dedupe.
func InitDedupeCache() {
	DedupeClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDedupeDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DedupeClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Dedupe): %v", err)
	}
}

// GetDedupeClient returns the Redis client for message deduplication.
func GetDedupeClient() *redis.Client {
	if DedupeClient == nil {
		InitDedupeCache()
	}
	return DedupeClient
}

// InitRedis initializes all Redis clients used by the service.
func InitRedis() {
	InitCache()
	InitDedupeCache()
}
