package cache

import (
	"context"
	"fmt"
	"time"

	"faceguard.io/infrastructure/env"
	"faceguard.io/infrastructure/logger"
	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
)

// ConnectToCache dials redis when REDIS_ADDR is set. Without it Client stays
// nil and callers fall back to in-process storage.
func ConnectToCache() error {
	addr := env.GetString("REDIS_ADDR", "")
	if addr == "" {
		logger.Info("REDIS_ADDR not set, session snapshots stay in memory")
		return nil
	}
	opt := &redis.Options{
		Addr:     addr,
		Password: env.GetString("REDIS_PASSWORD", ""),
		DB:       env.GetInt("REDIS_DB", 0),
		PoolSize: 10,
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	Client = client
	logger.Info("connected to redis successfully")
	return nil
}

func DisconnectCache() {
	if Client != nil {
		Client.Close()
		Client = nil
	}
}
