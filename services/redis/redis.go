package redis

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles all live-document operations. Every shared document
// the clients synchronize on (game state, night votes, protects, day votes)
// lives behind this client as a JSON blob.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// InitRedis connects to Redis and verifies the connection
func InitRedis(addr string, db int) (*RedisClient, error) {
	rc := NewRedisClient(addr, db)
	if err := rc.client.Ping(rc.ctx).Err(); err != nil {
		return nil, fmt.Errorf("error pinging Redis: %v", err)
	}
	return rc, nil
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(addr string, db int) *RedisClient {
	var client *redis.Client
	if addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// CloseRedis closes the underlying connection
func CloseRedis(rc *RedisClient) {
	if rc == nil || rc.client == nil {
		return
	}
	if err := rc.client.Close(); err != nil {
		log.Printf("[REDIS-ERROR] Error closing Redis connection: %v", err)
	}
}
