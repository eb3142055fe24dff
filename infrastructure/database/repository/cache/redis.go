package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	redisClient "faceguard.io/infrastructure/database/connection/cache"
	"faceguard.io/infrastructure/logger"
)

var ErrCacheUnavailable = errors.New("redis client not connected")

type RedisRepository struct {
	Client *redis.Client
}

func (redisRepo *RedisRepository) preRequest() error {
	if redisRepo.Client == nil {
		if redisClient.Client == nil {
			return ErrCacheUnavailable
		}
		redisRepo.Client = redisClient.Client
		logger.Info("redis repository initialisation complete")
	}
	return nil
}

func (redisRepo *RedisRepository) CreateEntry(ctx context.Context, key string, payload interface{}, ttl time.Duration) error {
	if err := redisRepo.preRequest(); err != nil {
		return err
	}
	if err := redisRepo.Client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Error("redis error occured while running CreateEntry", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return err
	}

	logger.Debug("redis CreateEntry completed")
	return nil
}

// FindOneByteArray returns nil without an error when the key does not exist.
func (redisRepo *RedisRepository) FindOneByteArray(ctx context.Context, key string) ([]byte, error) {
	if err := redisRepo.preRequest(); err != nil {
		return nil, err
	}

	result, err := redisRepo.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logger.Error("redis error occured while running FindOneByteArray", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return nil, err
	}

	logger.Debug("redis FindOneByteArray completed")
	return result, nil
}

func (redisRepo *RedisRepository) DeleteOne(ctx context.Context, key string) (bool, error) {
	if err := redisRepo.preRequest(); err != nil {
		return false, err
	}

	result, err := redisRepo.Client.Del(ctx, key).Result()
	if err != nil {
		logger.Error("redis error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "key",
			Data: key,
		})
		return false, err
	}

	logger.Debug("redis DeleteOne completed")
	return result == 1, nil
}
