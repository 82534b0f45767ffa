package lib

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// GetRedisClient returns the shared Redis connection used by the optional
// query-cache store. Returns nil when REDIS_URL is unset or unparseable, in
// which case callers fall back to the in-memory store.
func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}
