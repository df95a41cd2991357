package redis

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Client.Ping(Ctx).Err(); err != nil {
		log.Println("⚠️ Redis not reachable, caching disabled: ", err)
		Client = nil
		return
	}
	log.Println("✅ Redis connection established successfully!")
}
