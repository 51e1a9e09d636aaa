package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"levain/internal/config"
	applog "levain/internal/log"
)

// ConnectRedis opens a client for cfg and pings it before returning.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, fmt.Errorf("redis address must not be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	applog.Info(ctx, "connected to redis", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}
