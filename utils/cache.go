// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"autoshop/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// LockClient is the dedicated client for admission locks.
	LockClient *redis.Client
)

// InitCache initializes the generic Redis cache client (using DB from AppConfig for general caching).
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

// InitLockCache initializes the Redis client used for admission locks
// (using DB from AppConfig for locks).
func InitLockCache() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LockClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Locks): %v", err)
	}
}

// GetLockClient returns the Redis client for admission locks.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockCache()
	}
	return LockClient
}
