package initializers

import (
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Redis stays nil when REDIS_ADDR is unset; the menu cache then falls back
// to plain database reads.
var Redis *redis.Client

func ConnectToRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}

	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})
}
