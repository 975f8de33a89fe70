package redis

import (
	"context"
	"fmt"
	"time"

	"smartPricer/pkg/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis opens and pings a redis client. Callers should only invoke this
// when cfg.Redis.RedisHost is set; the prediction cache is optional.
func InitRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.RedisHost, cfg.Redis.RedisPort),
		Password: cfg.Redis.RedisPassword,
		DB:       cfg.Redis.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
