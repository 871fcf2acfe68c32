package database

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// ErrRedisNotConfigured lets callers fall back to in-process caching when
// no REDIS_URL is set instead of treating it as a startup failure.
var ErrRedisNotConfigured = errors.New("REDIS_URL not configured")

func InitRedis() (*redis.Client, error) {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		return nil, ErrRedisNotConfigured
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
