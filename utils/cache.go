package utils

import (
	"context"
	"log"
	"time"

	"barbershop/config"

	"github.com/go-redis/redis/v8"
)

// RedisClient backs the whole key-value namespace: drafts, appointments,
// shop settings, notifications and chat.
var RedisClient *redis.Client

// InitRedis connects to Redis using AppConfig and fails fast when it is unreachable.
func InitRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
}

// GetRedisClient returns the shared client, connecting on first use.
func GetRedisClient() *redis.Client {
	if RedisClient == nil {
		InitRedis()
	}
	return RedisClient
}

// CloseRedis releases the shared client.
func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}
